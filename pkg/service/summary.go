package service

import (
	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
)

// Summarize computes the caller-facing totals over a report table. The
// summary is derived from the table's already-rounded values and never
// feeds back into it.
func Summarize(table model.ReportTable) model.ReportSummary {
	var s model.ReportSummary
	marginSum := decimal.Zero
	for _, row := range table.Rows {
		s.TotalRevenue = s.TotalRevenue.Add(row.Revenue)
		s.TotalNetProfit = s.TotalNetProfit.Add(row.NetProfit)
		s.TotalSalesCount += row.SalesCount
		marginSum = marginSum.Add(row.MarginRatio)
		if row.NetProfit.IsPositive() {
			s.ProfitableCount++
		} else if row.NetProfit.IsNegative() {
			s.UnprofitableCount++
		}
	}
	if len(table.Rows) > 0 {
		s.MeanMarginRatio = marginSum.Div(decimal.NewFromInt(int64(len(table.Rows)))).Round(ratioScale)
	}
	return s
}
