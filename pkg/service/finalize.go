package service

import (
	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
)

const (
	currencyScale = 2
	ratioScale    = 4
)

var oneHundred = decimal.NewFromInt(100)

// Finalize joins the unit-cost ledger into the per-product table and
// computes tax, net profit and the profitability ratios.
//
// The join is a left join on product key: products without a cost row get
// a unit cost of zero, duplicate cost rows keep the last one. Ratio
// denominators that are exactly zero are floored to one, so the ratios
// are always defined. Currency fields are rounded to 2 decimals and ratio
// fields to 4, once, here; the intermediate stages stay unrounded so
// rounding error does not compound.
func Finalize(table model.AggregateTable, costs []model.CostRecord, taxRatePercent decimal.Decimal) model.ReportTable {
	unitCosts := make(map[string]decimal.Decimal, len(costs))
	for _, c := range costs {
		unitCosts[c.ProductKey] = c.UnitCost
	}

	taxMultiplier := taxRatePercent.Div(oneHundred)

	out := model.ReportTable{
		Rows:              make([]model.ReportRow, 0, len(table.Rows)),
		HasPaidAcceptance: table.HasPaidAcceptance,
	}
	for _, agg := range table.Rows {
		unitCost := unitCosts[agg.ProductKey]
		totalCostBasis := unitCost.Mul(decimal.NewFromInt(agg.SalesCount))
		taxAmount := agg.AmountToSellerSum.Mul(taxMultiplier)

		netProfit := agg.AmountToSellerSum.
			Sub(agg.DeliveryFeeSum).
			Sub(agg.FinesSum).
			Sub(agg.StorageFee).
			Sub(agg.PromotionAmount)
		if table.HasPaidAcceptance {
			netProfit = netProfit.Sub(agg.PaidAcceptance)
		}
		netProfit = netProfit.Sub(taxAmount).Sub(totalCostBasis)

		marginRatio := netProfit.Div(guardDenominator(agg.Revenue))
		returnOnCost := netProfit.Div(guardDenominator(totalCostBasis))

		out.Rows = append(out.Rows, model.ReportRow{
			ProductAggregate:  roundAggregate(agg),
			UnitCost:          unitCost.Round(currencyScale),
			TotalCostBasis:    totalCostBasis.Round(currencyScale),
			TaxAmount:         taxAmount.Round(currencyScale),
			NetProfit:         netProfit.Round(currencyScale),
			MarginRatio:       marginRatio.Round(ratioScale),
			ReturnOnCostRatio: returnOnCost.Round(ratioScale),
		})
	}
	return out
}

// guardDenominator floors an exactly-zero denominator to one so ratio
// computation never divides by zero.
func guardDenominator(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.NewFromInt(1)
	}
	return d
}

func roundAggregate(agg model.ProductAggregate) model.ProductAggregate {
	agg.AvgRetailPrice = agg.AvgRetailPrice.Round(currencyScale)
	agg.Revenue = agg.Revenue.Round(currencyScale)
	agg.AvgWbRealized = agg.AvgWbRealized.Round(currencyScale)
	agg.AmountToSellerSum = agg.AmountToSellerSum.Round(currencyScale)
	agg.DeliveryFeeSum = agg.DeliveryFeeSum.Round(currencyScale)
	agg.FinesSum = agg.FinesSum.Round(currencyScale)
	agg.StorageFee = agg.StorageFee.Round(currencyScale)
	agg.PromotionAmount = agg.PromotionAmount.Round(currencyScale)
	agg.PaidAcceptance = agg.PaidAcceptance.Round(currencyScale)
	return agg
}
