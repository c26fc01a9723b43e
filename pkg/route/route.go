package route

import (
	"time"

	"finan/ms-seller-analytics/conf"
	"finan/ms-seller-analytics/pkg/handlers"
	"finan/ms-seller-analytics/pkg/repo"
	service2 "finan/ms-seller-analytics/pkg/service"

	"github.com/gin-contrib/cors"
	"gitlab.com/goxp/cloud0/ginext"
	"gitlab.com/goxp/cloud0/service"
)

type Service struct {
	*service.BaseApp
}

func NewService() *Service {
	s := &Service{
		service.NewApp("MS Seller Analytics", "v1.0"),
	}

	s.Router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"PUT", "PATCH", "GET", "DELETE", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	reportStore := repo.NewReportStore(time.Duration(conf.LoadEnv().ReportTTLMin) * time.Minute)
	reportService := service2.NewReportService()
	reportHandle := handlers.NewReportHandlers(reportService, reportStore)
	adminHandle := handlers.NewAdminHandlers(reportStore)

	v1Api := s.Router.Group("/api/v1")

	v1Api.POST("/reports", ginext.WrapHandler(reportHandle.CreateReport))
	v1Api.GET("/reports/:id", ginext.WrapHandler(reportHandle.GetReport))
	v1Api.GET("/reports/:id/file", reportHandle.DownloadReportFile)

	// Admin
	s.Router.DELETE("/internal/reports", ginext.WrapHandler(adminHandle.PurgeReports))

	return s
}
