package service

import (
	"context"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
	"gitlab.com/goxp/cloud0/logger"
	"golang.org/x/sync/errgroup"
)

type ReportService struct{}

func NewReportService() ReportServiceInterface {
	return &ReportService{}
}

//go:generate mockgen -destination=../mocks/mock_report_service.go -package=mocks -source=report.go ReportServiceInterface
type ReportServiceInterface interface {
	BuildReport(ctx context.Context, primaryLedger, costLedger []byte, taxRatePercent decimal.Decimal) (model.Report, error)
}

// BuildReport runs the full pipeline over the two ledger exports:
// parse -> aggregate -> allocate -> finalize. Each stage produces a fresh
// table; a failure at any stage is terminal for this computation and no
// partial table is ever returned. The two workbooks are decoded
// concurrently, everything downstream is a pure function of the parsed
// records, so identical input bytes always produce an identical report.
func (s *ReportService) BuildReport(ctx context.Context, primaryLedger, costLedger []byte, taxRatePercent decimal.Decimal) (res model.Report, err error) {
	log := logger.WithCtx(ctx, "ReportService.BuildReport")

	var (
		records []model.TransactionRecord
		costs   []model.CostRecord
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var parseErr error
		records, parseErr = ParsePrimaryLedger(primaryLedger)
		return parseErr
	})
	g.Go(func() error {
		var parseErr error
		costs, parseErr = ParseCostLedger(costLedger)
		return parseErr
	})
	if err = g.Wait(); err != nil {
		log.WithError(err).Error("Parse ledger error")
		return res, err
	}
	if len(records) == 0 {
		return res, &model.EmptyResultError{}
	}
	if err = ctx.Err(); err != nil {
		return res, err
	}

	aggregated := Aggregate(records)
	allocated := AllocateSharedCosts(aggregated)
	if err = ctx.Err(); err != nil {
		return res, err
	}
	table := Finalize(allocated, costs, taxRatePercent)

	res = model.Report{
		TaxRatePercent: taxRatePercent,
		Table:          table,
		Summary:        Summarize(table),
	}
	return res, nil
}
