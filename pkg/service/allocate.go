package service

import (
	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
)

// AllocateSharedCosts redistributes lump-sum shared-cost categories across
// products proportionally to each product's share of the total sales
// count. It is a pure transform: the input table is left untouched and a
// fresh table with the same schema is returned.
//
// Storage and promotion are always ledger-level lump categories and are
// reallocated whenever their raw total is positive. Paid acceptance is
// reallocated only when the column holds exactly one distinct value
// across all products and that value is positive; differing values mean
// the ledger already itemized the cost per product and redistributing it
// again would double-count.
//
// When the table has no sales at all, raw values pass through unchanged.
func AllocateSharedCosts(table model.AggregateTable) model.AggregateTable {
	out := model.AggregateTable{
		Rows:              append([]model.ProductAggregate(nil), table.Rows...),
		HasPaidAcceptance: table.HasPaidAcceptance,
	}

	var totalSales int64
	for _, row := range out.Rows {
		totalSales += row.SalesCount
	}
	if totalSales <= 0 {
		return out
	}
	totalSalesDec := decimal.NewFromInt(totalSales)

	storageTotal := decimal.Zero
	promotionTotal := decimal.Zero
	for _, row := range out.Rows {
		storageTotal = storageTotal.Add(row.StorageFee)
		promotionTotal = promotionTotal.Add(row.PromotionAmount)
	}

	if storageTotal.IsPositive() {
		for i := range out.Rows {
			out.Rows[i].StorageFee = allocateShare(storageTotal, out.Rows[i].SalesCount, totalSalesDec)
		}
	}
	if promotionTotal.IsPositive() {
		for i := range out.Rows {
			out.Rows[i].PromotionAmount = allocateShare(promotionTotal, out.Rows[i].SalesCount, totalSalesDec)
		}
	}

	// The repeated value is one lump, not a per-row amount: the category
	// total to spread is the lump itself.
	if lump, ok := paidAcceptanceLump(out.Rows); ok {
		for i := range out.Rows {
			out.Rows[i].PaidAcceptance = allocateShare(lump, out.Rows[i].SalesCount, totalSalesDec)
		}
	}

	return out
}

// allocateShare computes total * salesCount / totalSales.
func allocateShare(total decimal.Decimal, salesCount int64, totalSales decimal.Decimal) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(salesCount)).Div(totalSales)
}

// paidAcceptanceLump reports the single undifferentiated paid-acceptance
// value when the ledger carried one lump sum instead of per-product
// detail: exactly one distinct value over all products, greater than zero.
func paidAcceptanceLump(rows []model.ProductAggregate) (decimal.Decimal, bool) {
	if len(rows) == 0 {
		return decimal.Zero, false
	}
	first := rows[0].PaidAcceptance
	for _, row := range rows[1:] {
		if !row.PaidAcceptance.Equal(first) {
			return decimal.Zero, false
		}
	}
	if !first.IsPositive() {
		return decimal.Zero, false
	}
	return first, true
}
