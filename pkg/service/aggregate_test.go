package service

import (
	"testing"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleRecord(key string, retail, toSeller, fines string) model.TransactionRecord {
	return model.TransactionRecord{
		ProductKey:     key,
		DocumentType:   model.DocSale,
		RetailPrice:    dec(retail),
		AmountToSeller: dec(toSeller),
		TotalFines:     dec(fines),
	}
}

func logisticsRecord(key string, deliveryFee string) model.TransactionRecord {
	return model.TransactionRecord{
		ProductKey:    key,
		PaymentReason: model.ReasonLogistics,
		DeliveryFee:   dec(deliveryFee),
	}
}

func TestAggregate(t *testing.T) {
	records := []model.TransactionRecord{
		saleRecord("A1", "1000", "900", "10"),
		saleRecord("A1", "500", "450", "0"),
		logisticsRecord("A1", "50"),
		logisticsRecord("A1", "25"),
		// Storage applies on every row regardless of type.
		{ProductKey: "A1", StorageFee: dec("3.5")},
		{ProductKey: "A1", DocumentType: model.DocSale, RetailPrice: dec("0"), StorageFee: dec("1.5"),
			WbRealizedAmount: dec("120"), AdjustmentType: model.AdjustmentPromotionService},
		// A product seen only in logistics still gets a row.
		logisticsRecord("B2", "40"),
	}

	table := Aggregate(records)

	require.Len(t, table.Rows, 2)
	assert.False(t, table.HasPaidAcceptance)

	a1 := table.Rows[0]
	assert.Equal(t, "A1", a1.ProductKey)
	assert.Equal(t, int64(3), a1.SalesCount)
	assert.True(t, a1.Revenue.Equal(dec("1500")))
	assert.True(t, a1.AvgRetailPrice.Equal(dec("500")))
	assert.True(t, a1.AmountToSellerSum.Equal(dec("1350")))
	assert.True(t, a1.FinesSum.Equal(dec("10")))
	assert.True(t, a1.DeliveryFeeSum.Equal(dec("75")))
	assert.True(t, a1.StorageFee.Equal(dec("5")))
	assert.True(t, a1.PromotionAmount.Equal(dec("120")))

	b2 := table.Rows[1]
	assert.Equal(t, "B2", b2.ProductKey)
	assert.Equal(t, int64(0), b2.SalesCount)
	assert.True(t, b2.DeliveryFeeSum.Equal(dec("40")))
	// Absent categories fill with zero, they are not errors.
	assert.True(t, b2.Revenue.IsZero())
	assert.True(t, b2.AvgRetailPrice.IsZero())
	assert.True(t, b2.FinesSum.IsZero())
}

func TestAggregate_TotalSalesCountMatchesSaleRows(t *testing.T) {
	records := []model.TransactionRecord{
		saleRecord("A1", "100", "90", "0"),
		saleRecord("B2", "200", "180", "0"),
		saleRecord("B2", "200", "180", "0"),
		logisticsRecord("C3", "10"),
		{ProductKey: "D4"},
	}

	table := Aggregate(records)

	var total int64
	for _, row := range table.Rows {
		total += row.SalesCount
	}
	assert.Equal(t, int64(3), total)
}

func TestAggregate_OrderIndependentAndSorted(t *testing.T) {
	forward := []model.TransactionRecord{
		saleRecord("B2", "200", "180", "0"),
		saleRecord("A1", "100", "90", "0"),
		logisticsRecord("A1", "10"),
	}
	reversed := []model.TransactionRecord{forward[2], forward[1], forward[0]}

	first := Aggregate(forward)
	second := Aggregate(reversed)

	assert.Equal(t, first, second)
	require.Len(t, first.Rows, 2)
	assert.Equal(t, "A1", first.Rows[0].ProductKey)
	assert.Equal(t, "B2", first.Rows[1].ProductKey)
}

func TestAggregate_PaidAcceptanceColumn(t *testing.T) {
	records := []model.TransactionRecord{
		saleRecord("A1", "100", "90", "0"),
		{ProductKey: "A1", PaymentReason: model.ReasonPaidAcceptance, DeliveryFee: dec("300")},
	}

	table := Aggregate(records)

	assert.True(t, table.HasPaidAcceptance)
	require.Len(t, table.Rows, 1)
	assert.True(t, table.Rows[0].PaidAcceptance.Equal(dec("300")))
}
