package handlers

import (
	"errors"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"strings"

	"finan/ms-seller-analytics/conf"
	"finan/ms-seller-analytics/pkg/model"
	"finan/ms-seller-analytics/pkg/repo"
	"finan/ms-seller-analytics/pkg/service"
	"finan/ms-seller-analytics/pkg/utils"

	"github.com/gin-gonic/gin"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/logger"
)

type ReportHandlers struct {
	service  service.ReportServiceInterface
	store    repo.ReportStoreInterface
	renderer *service.ExcelRenderer
}

func NewReportHandlers(reportService service.ReportServiceInterface, store repo.ReportStoreInterface) *ReportHandlers {
	return &ReportHandlers{
		service:  reportService,
		store:    store,
		renderer: service.NewExcelRenderer(),
	}
}

// CreateReport accepts the two ledger workbooks and the tax rate as a
// multipart form, runs the engine and stores the result for later
// retrieval. All range/size/extension validation happens here; the
// engine only ever sees raw bytes and a rate.
func (h *ReportHandlers) CreateReport(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "ReportHandlers.CreateReport")

	taxRate, err := utils.ParseTaxRate(r.GinCtx.PostForm(utils.FORM_FIELD_TAX_RATE), conf.LoadEnv().DefaultTaxRate)
	if err != nil {
		log.WithError(err).Error("Invalid tax rate")
		return nil, ginext.NewError(http.StatusBadRequest, err.Error())
	}

	primaryBytes, err := h.readUpload(r.GinCtx, utils.FORM_FIELD_REPORT_FILE)
	if err != nil {
		log.WithError(err).Error("Error when read report file")
		return nil, err
	}
	costBytes, err := h.readUpload(r.GinCtx, utils.FORM_FIELD_COST_FILE)
	if err != nil {
		log.WithError(err).Error("Error when read cost file")
		return nil, err
	}

	report, err := h.service.BuildReport(r.GinCtx, primaryBytes, costBytes, taxRate)
	if err != nil {
		log.WithError(err).Error("Build report error")
		return nil, engineError(err)
	}

	report, err = h.store.Save(r.GinCtx, report)
	if err != nil {
		log.WithError(err).Error("Save report error")
		return nil, ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}

	return ginext.NewResponseData(http.StatusOK, report), nil
}

// GetReport re-fetches a stored report as JSON.
func (h *ReportHandlers) GetReport(r *ginext.Request) (*ginext.Response, error) {
	log := logger.WithCtx(r.GinCtx, "ReportHandlers.GetReport")

	report, err := h.store.Get(r.GinCtx, r.GinCtx.Param("id"))
	if err != nil {
		log.WithError(err).Error("Get report error")
		return nil, ginext.NewError(http.StatusNotFound, utils.MessageError()[http.StatusNotFound])
	}

	return ginext.NewResponseData(http.StatusOK, report), nil
}

// DownloadReportFile renders a stored report as a styled workbook. Plain
// gin handler: the response body is file bytes, not the JSON envelope.
func (h *ReportHandlers) DownloadReportFile(ctx *gin.Context) {
	log := logger.WithCtx(ctx, "ReportHandlers.DownloadReportFile")

	report, err := h.store.Get(ctx, ctx.Param("id"))
	if err != nil {
		log.WithError(err).Error("Get report error")
		ctx.JSON(http.StatusNotFound, gin.H{"message": utils.MessageError()[http.StatusNotFound]})
		return
	}

	fileBytes, err := h.renderer.Render(report)
	if err != nil {
		log.WithError(err).Error("Render workbook error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": utils.MessageError()[http.StatusInternalServerError]})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.REPORT_FILE_NAME))
	ctx.Data(http.StatusOK, utils.CONTENT_TYPE_XLSX, fileBytes)
}

// readUpload pulls one workbook out of the multipart form, enforcing the
// size cap and extension before any bytes reach the engine.
func (h *ReportHandlers) readUpload(ctx *gin.Context, field string) ([]byte, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, ginext.NewError(http.StatusBadRequest, fmt.Sprintf("Missing uploaded file %q", field))
	}
	if fileHeader.Size > conf.LoadEnv().MaxFileSizeMB*1024*1024 {
		return nil, ginext.NewError(http.StatusRequestEntityTooLarge, utils.MessageError()[http.StatusRequestEntityTooLarge])
	}
	if !utils.IsWorkbookFileName(fileHeader.Filename) {
		return nil, ginext.NewError(http.StatusBadRequest, fmt.Sprintf("File %q is not an Excel workbook", fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, ginext.NewError(http.StatusBadRequest, utils.MessageError()[http.StatusBadRequest])
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	fileBytes, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, ginext.NewError(http.StatusBadRequest, utils.MessageError()[http.StatusBadRequest])
	}
	return fileBytes, nil
}

// engineError maps the engine's typed errors onto HTTP. Schema failures
// surface the missing column names verbatim.
func engineError(err error) error {
	var schemaErr *model.SchemaError
	var parseErr *model.ParseError
	var emptyErr *model.EmptyResultError
	switch {
	case errors.As(err, &schemaErr):
		return ginext.NewError(http.StatusBadRequest,
			fmt.Sprintf("Missing required columns: %s", strings.Join(schemaErr.Missing, ", ")))
	case errors.As(err, &parseErr):
		return ginext.NewError(http.StatusBadRequest, "Cannot read the uploaded workbook, check the file format")
	case errors.As(err, &emptyErr):
		return ginext.NewError(http.StatusUnprocessableEntity, utils.MessageError()[http.StatusUnprocessableEntity])
	default:
		return ginext.NewError(http.StatusInternalServerError, utils.MessageError()[http.StatusInternalServerError])
	}
}
