package model

import (
	"github.com/shopspring/decimal"
)

// ProductAggregate is the per-product rollup of the primary ledger.
// Money fields stay unrounded until the finalize stage.
type ProductAggregate struct {
	ProductKey        string          `json:"product_key"`
	SalesCount        int64           `json:"sales_count"`
	AvgRetailPrice    decimal.Decimal `json:"avg_retail_price"`
	Revenue           decimal.Decimal `json:"revenue"`
	AvgWbRealized     decimal.Decimal `json:"avg_wb_realized"`
	AmountToSellerSum decimal.Decimal `json:"amount_to_seller_sum"`
	DeliveryFeeSum    decimal.Decimal `json:"delivery_fee_sum"`
	FinesSum          decimal.Decimal `json:"fines_sum"`
	StorageFee        decimal.Decimal `json:"storage_fee"`
	PromotionAmount   decimal.Decimal `json:"promotion_amount"`
	PaidAcceptance    decimal.Decimal `json:"paid_acceptance"`
}

// AggregateTable is the intermediate per-product table between the
// aggregation, allocation and finalize stages. Rows are sorted ascending
// by product key and each stage returns a fresh table.
type AggregateTable struct {
	Rows []ProductAggregate `json:"rows"`
	// HasPaidAcceptance is set when the ledger contained at least one
	// paid-acceptance line; the column is dropped from output otherwise.
	HasPaidAcceptance bool `json:"has_paid_acceptance"`
}

// ReportRow is one product of the final report.
type ReportRow struct {
	ProductAggregate
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCostBasis    decimal.Decimal `json:"total_cost_basis"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	MarginRatio       decimal.Decimal `json:"margin_ratio"`
	ReturnOnCostRatio decimal.Decimal `json:"return_on_cost_ratio"`
}

// ReportTable is the immutable engine output: one row per product key,
// sorted ascending by product key.
type ReportTable struct {
	Rows              []ReportRow `json:"rows"`
	HasPaidAcceptance bool        `json:"has_paid_acceptance"`
}

// ReportSummary carries the caller-facing totals over a report table.
type ReportSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalNetProfit    decimal.Decimal `json:"total_net_profit"`
	MeanMarginRatio   decimal.Decimal `json:"mean_margin_ratio"`
	ProfitableCount   int             `json:"profitable_count"`
	UnprofitableCount int             `json:"unprofitable_count"`
	TotalSalesCount   int64           `json:"total_sales_count"`
}

// Report bundles a computed table with its summary and request parameters,
// as stored for later retrieval/rendering.
type Report struct {
	ID             string          `json:"id"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	Table          ReportTable     `json:"table"`
	Summary        ReportSummary   `json:"summary"`
}
