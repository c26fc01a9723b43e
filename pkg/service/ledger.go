package service

import (
	"bytes"
	"strings"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column vocabulary of the marketplace exports. Headers are trimmed of
// surrounding whitespace and then matched exactly, case-sensitive.
const (
	ColProductKey     = "Артикул поставщика"
	ColDocumentType   = "Тип документа"
	ColPaymentReason  = "Обоснование для оплаты"
	ColRetailPrice    = "Цена розничная"
	ColWbRealized     = "Вайлдберриз реализовал Товар (Пр)"
	ColAmountToSeller = "К перечислению Продавцу за реализованный Товар"
	ColDeliveryFee    = "Услуги по доставке товара покупателю"
	ColTotalFines     = "Общая сумма штрафов"
	ColStorageFee     = "Хранение"
	ColAdjustmentType = "Виды логистики, штрафов и корректировок ВВ"

	ColUnitCost = "Себестоимость"
)

// Cell values that drive the aggregation masks.
const (
	docSale             = "Продажа"
	reasonLogistics     = "Логистика"
	reasonPaidAccept    = "Платная приемка"
	adjustmentPromotion = "Оказание услуг «WB Продвижение»"
)

var requiredPrimaryColumns = []string{
	ColProductKey,
	ColDocumentType,
	ColPaymentReason,
	ColRetailPrice,
	ColWbRealized,
	ColAmountToSeller,
	ColDeliveryFee,
	ColTotalFines,
	ColStorageFee,
	ColAdjustmentType,
}

var requiredCostColumns = []string{
	ColProductKey,
	ColUnitCost,
}

// ParsePrimaryLedger decodes the sales/operations ledger workbook into
// typed transaction records. Rows without a product key are dropped after
// schema validation and never fail the parse on their own.
func ParsePrimaryLedger(fileBytes []byte) ([]model.TransactionRecord, error) {
	rows, err := readWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}

	header, err := validateColumns(rows, requiredPrimaryColumns)
	if err != nil {
		return nil, err
	}

	var records []model.TransactionRecord
	for _, row := range rows[1:] {
		productKey := cellAt(row, header[ColProductKey])
		if productKey == "" {
			continue
		}
		records = append(records, model.TransactionRecord{
			ProductKey:       productKey,
			DocumentType:     parseDocumentType(cellAt(row, header[ColDocumentType])),
			PaymentReason:    parsePaymentReason(cellAt(row, header[ColPaymentReason])),
			AdjustmentType:   parseAdjustmentType(cellAt(row, header[ColAdjustmentType])),
			RetailPrice:      parseAmount(cellAt(row, header[ColRetailPrice])),
			WbRealizedAmount: parseAmount(cellAt(row, header[ColWbRealized])),
			AmountToSeller:   parseAmount(cellAt(row, header[ColAmountToSeller])),
			DeliveryFee:      parseAmount(cellAt(row, header[ColDeliveryFee])),
			TotalFines:       parseAmount(cellAt(row, header[ColTotalFines])),
			StorageFee:       parseAmount(cellAt(row, header[ColStorageFee])),
		})
	}
	return records, nil
}

// ParseCostLedger decodes the unit-cost ledger workbook.
func ParseCostLedger(fileBytes []byte) ([]model.CostRecord, error) {
	rows, err := readWorkbook(fileBytes)
	if err != nil {
		return nil, err
	}

	header, err := validateColumns(rows, requiredCostColumns)
	if err != nil {
		return nil, err
	}

	var records []model.CostRecord
	for _, row := range rows[1:] {
		productKey := cellAt(row, header[ColProductKey])
		if productKey == "" {
			continue
		}
		records = append(records, model.CostRecord{
			ProductKey: productKey,
			UnitCost:   parseAmount(cellAt(row, header[ColUnitCost])),
		})
	}
	return records, nil
}

// readWorkbook opens the workbook bytes and returns the raw rows of the
// first sheet.
func readWorkbook(fileBytes []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, &model.ParseError{Err: err}
	}
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &model.ParseError{Err: err}
	}
	return rows, nil
}

// validateColumns builds the header index and reports every absent
// required column at once.
func validateColumns(rows [][]string, required []string) (map[string]int, error) {
	header := make(map[string]int)
	if len(rows) > 0 {
		for i, name := range rows[0] {
			name = strings.TrimSpace(name)
			if _, ok := header[name]; !ok {
				header[name] = i
			}
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := header[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaError{Missing: missing}
	}
	return header, nil
}

// cellAt reads a trimmed cell; rows shorter than the header read as empty.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount converts a raw cell into a decimal. Blank and unparseable
// cells read as zero, thousands separators and non-breaking spaces are
// tolerated.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDocumentType(s string) model.DocumentType {
	if s == docSale {
		return model.DocSale
	}
	return model.DocOther
}

func parsePaymentReason(s string) model.PaymentReason {
	switch s {
	case reasonLogistics:
		return model.ReasonLogistics
	case reasonPaidAccept:
		return model.ReasonPaidAcceptance
	default:
		return model.ReasonOther
	}
}

func parseAdjustmentType(s string) model.AdjustmentType {
	if s == adjustmentPromotion {
		return model.AdjustmentPromotionService
	}
	return model.AdjustmentOther
}
