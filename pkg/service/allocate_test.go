package service

import (
	"testing"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggRow(key string, salesCount int64) model.ProductAggregate {
	return model.ProductAggregate{ProductKey: key, SalesCount: salesCount}
}

func TestAllocateSharedCosts_StorageAndPromotion(t *testing.T) {
	table := model.AggregateTable{Rows: []model.ProductAggregate{
		func() model.ProductAggregate {
			r := aggRow("A1", 1)
			r.StorageFee = dec("90")
			r.PromotionAmount = dec("10")
			return r
		}(),
		func() model.ProductAggregate {
			r := aggRow("B2", 3)
			r.StorageFee = dec("10")
			r.PromotionAmount = dec("30")
			return r
		}(),
	}}

	out := AllocateSharedCosts(table)

	// Shares follow sales count, not the raw per-product values.
	assert.True(t, out.Rows[0].StorageFee.Equal(dec("25")), "got %s", out.Rows[0].StorageFee)
	assert.True(t, out.Rows[1].StorageFee.Equal(dec("75")), "got %s", out.Rows[1].StorageFee)
	assert.True(t, out.Rows[0].PromotionAmount.Equal(dec("10")))
	assert.True(t, out.Rows[1].PromotionAmount.Equal(dec("30")))

	// Conservation: the category total survives reallocation.
	storageSum := out.Rows[0].StorageFee.Add(out.Rows[1].StorageFee)
	assert.True(t, storageSum.Sub(dec("100")).Abs().LessThan(dec("0.000001")))

	// Pure transform: the input table is untouched.
	assert.True(t, table.Rows[0].StorageFee.Equal(dec("90")))
}

func TestAllocateSharedCosts_NoSalesPassthrough(t *testing.T) {
	table := model.AggregateTable{Rows: []model.ProductAggregate{
		func() model.ProductAggregate {
			r := aggRow("A1", 0)
			r.StorageFee = dec("90")
			return r
		}(),
	}}

	out := AllocateSharedCosts(table)

	assert.Equal(t, table.Rows, out.Rows)
}

func TestAllocateSharedCosts_PaidAcceptanceLump(t *testing.T) {
	// One undifferentiated lump of 300 repeated against every product.
	table := model.AggregateTable{HasPaidAcceptance: true, Rows: []model.ProductAggregate{
		withPaidAcceptance(aggRow("A1", 1), "300"),
		withPaidAcceptance(aggRow("B2", 2), "300"),
		withPaidAcceptance(aggRow("C3", 3), "300"),
	}}

	out := AllocateSharedCosts(table)

	require.Len(t, out.Rows, 3)
	assert.True(t, out.Rows[0].PaidAcceptance.Equal(dec("50")), "got %s", out.Rows[0].PaidAcceptance)
	assert.True(t, out.Rows[1].PaidAcceptance.Equal(dec("100")), "got %s", out.Rows[1].PaidAcceptance)
	assert.True(t, out.Rows[2].PaidAcceptance.Equal(dec("150")), "got %s", out.Rows[2].PaidAcceptance)

	sum := decimal.Zero
	for _, row := range out.Rows {
		sum = sum.Add(row.PaidAcceptance)
	}
	assert.True(t, sum.Equal(dec("300")))
}

func TestAllocateSharedCosts_ItemizedPaidAcceptanceUntouched(t *testing.T) {
	table := model.AggregateTable{HasPaidAcceptance: true, Rows: []model.ProductAggregate{
		withPaidAcceptance(aggRow("A1", 1), "120"),
		withPaidAcceptance(aggRow("B2", 2), "40"),
	}}

	out := AllocateSharedCosts(table)

	// Differing values mean the ledger already itemized the cost.
	assert.True(t, out.Rows[0].PaidAcceptance.Equal(dec("120")))
	assert.True(t, out.Rows[1].PaidAcceptance.Equal(dec("40")))
}

func withPaidAcceptance(r model.ProductAggregate, v string) model.ProductAggregate {
	r.PaidAcceptance = dec(v)
	return r
}
