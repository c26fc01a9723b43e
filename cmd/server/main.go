package main

import (
	"context"
	"os"

	"finan/ms-seller-analytics/conf"
	"finan/ms-seller-analytics/pkg/route"
	"finan/ms-seller-analytics/pkg/utils"

	"gitlab.com/goxp/cloud0/logger"
)

const (
	APPNAME = "SellerAnalytics"
)

func main() {
	conf.SetEnv()
	logger.Init(APPNAME)
	utils.LoadMessageError()

	_ = os.Setenv("PORT", conf.LoadEnv().Port)
	// Stateless service: all storage is the in-memory report cache.
	_ = os.Setenv("ENABLE_DB", "false")

	app := route.NewService()
	ctx := context.Background()
	err := app.Start(ctx)
	if err != nil {
		logger.Tag("main").Error(err)
	}
	os.Clearenv()
}
