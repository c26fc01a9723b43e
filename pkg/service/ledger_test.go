package service

import (
	"errors"
	"testing"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// buildWorkbook writes rows into a single-sheet workbook and returns its
// bytes, the same shape the upload handlers hand to the engine.
func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func primaryHeader() []interface{} {
	return []interface{}{
		ColProductKey, ColDocumentType, ColPaymentReason, ColRetailPrice,
		ColWbRealized, ColAmountToSeller, ColDeliveryFee, ColTotalFines,
		ColStorageFee, ColAdjustmentType,
	}
}

func TestParsePrimaryLedger(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]interface{}{
		{
			"  " + ColProductKey + "  ", ColDocumentType, ColPaymentReason, ColRetailPrice,
			ColWbRealized, ColAmountToSeller, ColDeliveryFee, ColTotalFines,
			ColStorageFee, ColAdjustmentType,
		},
		{"A123", "Продажа", "", 1000, 950.5, 900, 0, 0, 12.3, ""},
		{"A123", "", "Логистика", 0, 0, 0, 50, 0, 0, ""},
		{"", "Продажа", "", 500, 0, 0, 0, 0, 0, ""},
		{"B777", "", "Платная приемка", 0, 0, 0, 300, 0, 0, "Оказание услуг «WB Продвижение»"},
	})

	records, err := ParsePrimaryLedger(fileBytes)
	require.NoError(t, err)
	// The row without a product key is dropped, not an error.
	require.Len(t, records, 3)

	sale := records[0]
	assert.Equal(t, "A123", sale.ProductKey)
	assert.Equal(t, model.DocSale, sale.DocumentType)
	assert.Equal(t, model.ReasonOther, sale.PaymentReason)
	assert.True(t, sale.RetailPrice.Equal(dec("1000")))
	assert.True(t, sale.WbRealizedAmount.Equal(dec("950.5")))
	assert.True(t, sale.AmountToSeller.Equal(dec("900")))
	assert.True(t, sale.StorageFee.Equal(dec("12.3")))

	logistics := records[1]
	assert.Equal(t, model.DocOther, logistics.DocumentType)
	assert.Equal(t, model.ReasonLogistics, logistics.PaymentReason)
	assert.True(t, logistics.DeliveryFee.Equal(dec("50")))

	acceptance := records[2]
	assert.Equal(t, model.ReasonPaidAcceptance, acceptance.PaymentReason)
	assert.Equal(t, model.AdjustmentPromotionService, acceptance.AdjustmentType)
}

func TestParsePrimaryLedger_SchemaErrorListsEveryMissingColumn(t *testing.T) {
	// Header without document type and storage.
	fileBytes := buildWorkbook(t, [][]interface{}{
		{
			ColProductKey, ColPaymentReason, ColRetailPrice, ColWbRealized,
			ColAmountToSeller, ColDeliveryFee, ColTotalFines, ColAdjustmentType,
		},
		{"A123", "", 100, 0, 0, 0, 0, ""},
	})

	records, err := ParsePrimaryLedger(fileBytes)
	assert.Nil(t, records)

	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{ColDocumentType, ColStorageFee}, schemaErr.Missing)
}

func TestParsePrimaryLedger_ParseError(t *testing.T) {
	_, err := ParsePrimaryLedger([]byte("not a workbook at all"))

	var parseErr *model.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseCostLedger(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]interface{}{
		{ColProductKey, ColUnitCost},
		{"A123", 300},
		{"B777", "1 250,50"},
		{"", 99},
	})

	records, err := ParseCostLedger(fileBytes)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A123", records[0].ProductKey)
	assert.True(t, records[0].UnitCost.Equal(dec("300")))
	// Non-breaking spaces and decimal commas occur in real exports.
	assert.True(t, records[1].UnitCost.Equal(dec("1250.5")))
}

func TestParseCostLedger_SchemaError(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]interface{}{
		{ColProductKey},
		{"A123"},
	})

	_, err := ParseCostLedger(fileBytes)

	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{ColUnitCost}, schemaErr.Missing)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"1000", "1000"},
		{"1,5", "1.5"},
		{"1,234.56", "1234.56"},
		{"1 234,5", "1234.5"},
		{"-12.4", "-12.4"},
		{"garbage", "0"},
	}
	for _, tt := range tests {
		assert.True(t, parseAmount(tt.in).Equal(dec(tt.want)), "parseAmount(%q)", tt.in)
	}
}
