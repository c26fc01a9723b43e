package handlers

import (
	"net/http"

	"finan/ms-seller-analytics/conf"
	"finan/ms-seller-analytics/pkg/repo"
	"finan/ms-seller-analytics/pkg/utils"

	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
)

type AdminHandlers struct {
	store repo.ReportStoreInterface
}

func NewAdminHandlers(store repo.ReportStoreInterface) *AdminHandlers {
	return &AdminHandlers{store: store}
}

// PurgeReports drops every stored report. Allow-listed numeric admin ids
// only.
func (h *AdminHandlers) PurgeReports(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "AdminHandlers.PurgeReports")

	adminID, err := utils.CurrentAdmin(r.GinCtx.Request)
	if err != nil {
		log.WithError(err).Error("Error when get current admin")
		return nil, ginext.NewError(http.StatusUnauthorized, utils.MessageError()[http.StatusUnauthorized])
	}
	if !utils.IsAllowedAdmin(adminID, conf.LoadEnv().AdminIDs) {
		log.WithField("admin_id", adminID).Error("Admin id is not allow-listed")
		return nil, ginext.NewError(http.StatusForbidden, utils.MessageError()[http.StatusForbidden])
	}

	purged := h.store.Purge(r.GinCtx)
	return ginext.NewResponseData(http.StatusOK, map[string]int{"purged": purged}), nil
}
