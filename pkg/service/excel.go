package service

import (
	"fmt"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const reportSheetName = "Аналитика"

// ExcelRenderer writes a report table into a styled workbook. It is a
// rendering collaborator: it consumes the final table and summary as-is
// and never alters the numbers.
type ExcelRenderer struct{}

func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

type reportColumn struct {
	title string
	kind  columnKind
	value func(model.ReportRow) interface{}
}

type columnKind int

const (
	colText columnKind = iota
	colCount
	colCurrency
	colRatio
)

func reportColumns(hasPaidAcceptance bool) []reportColumn {
	cols := []reportColumn{
		{"Артикул поставщика", colText, func(r model.ReportRow) interface{} { return r.ProductKey }},
		{"Количество продаж", colCount, func(r model.ReportRow) interface{} { return r.SalesCount }},
		{"Средняя цена розничная", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.AvgRetailPrice) }},
		{"Выручка", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.Revenue) }},
		{"Среднее Вайлдберриз", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.AvgWbRealized) }},
		{"Сумма к перечислению", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.AmountToSellerSum) }},
		{"Сумма услуг доставки", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.DeliveryFeeSum) }},
		{"Сумма штрафов", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.FinesSum) }},
		{"Хранение", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.StorageFee) }},
		{"Сумма WB Продвижение", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.PromotionAmount) }},
	}
	if hasPaidAcceptance {
		cols = append(cols, reportColumn{"Платная приемка", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.PaidAcceptance) }})
	}
	cols = append(cols,
		reportColumn{"Себестоимость", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.UnitCost) }},
		reportColumn{"Итоговая себестоимость", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.TotalCostBasis) }},
		reportColumn{"Налоги", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.TaxAmount) }},
		reportColumn{"Чистая прибыль", colCurrency, func(r model.ReportRow) interface{} { return cellValue(r.NetProfit) }},
		reportColumn{"Маржинальность", colRatio, func(r model.ReportRow) interface{} { return cellValue(r.MarginRatio) }},
		reportColumn{"Рентабельность", colRatio, func(r model.ReportRow) interface{} { return cellValue(r.ReturnOnCostRatio) }},
	)
	return cols
}

func cellValue(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Render produces the styled workbook bytes for a computed report.
func (e *ExcelRenderer) Render(report model.Report) ([]byte, error) {
	cols := reportColumns(report.Table.HasPaidAcceptance)

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), reportSheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E86AB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	currencyFmt := `#,##0.00" ₽"`
	currencyStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &currencyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	percentFmt := "0.00%"
	ratioStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &percentFmt,
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	plainStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(cols))
	for c, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(reportSheetName, cell, col.title); err != nil {
			return nil, err
		}
		widths[c] = len([]rune(col.title))
	}

	for r, row := range report.Table.Rows {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			v := col.value(row)
			if err := f.SetCellValue(reportSheetName, cell, v); err != nil {
				return nil, err
			}
			if l := len([]rune(fmt.Sprint(v))); l > widths[c] {
				widths[c] = l
			}
		}
	}

	lastRow := len(report.Table.Rows) + 1
	lastCol, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(reportSheetName, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}
	if lastRow > 1 {
		for c, col := range cols {
			style := plainStyle
			switch col.kind {
			case colCurrency:
				style = currencyStyle
			case colRatio:
				style = ratioStyle
			}
			top, _ := excelize.CoordinatesToCellName(c+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(c+1, lastRow)
			if err := f.SetCellStyle(reportSheetName, top, bottom, style); err != nil {
				return nil, err
			}
		}
		if err := e.applyMarginColorScale(f, cols, lastRow); err != nil {
			return nil, err
		}
	}

	for c := range cols {
		name, _ := excelize.ColumnNumberToName(c + 1)
		width := float64(widths[c] + 2)
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(reportSheetName, name, name, width); err != nil {
			return nil, err
		}
	}

	e.writeSummary(f, report.Summary, lastRow+2)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyMarginColorScale colors the margin column red-yellow-green between
// 0%, 10% and 20% margin, matching the business report convention.
func (e *ExcelRenderer) applyMarginColorScale(f *excelize.File, cols []reportColumn, lastRow int) error {
	marginIdx := -1
	for c, col := range cols {
		if col.title == "Маржинальность" {
			marginIdx = c
			break
		}
	}
	if marginIdx < 0 {
		return nil
	}
	name, _ := excelize.ColumnNumberToName(marginIdx + 1)
	area := fmt.Sprintf("%s2:%s%d", name, name, lastRow)
	format := `[{"type":"3_color_scale","criteria":"=","min_type":"num","min_value":"0","min_color":"#F8696B","mid_type":"num","mid_value":"0.1","mid_color":"#FFEB84","max_type":"num","max_value":"0.2","max_color":"#63BE7B"}]`
	return f.SetConditionalFormat(reportSheetName, area, format)
}

func (e *ExcelRenderer) writeSummary(f *excelize.File, s model.ReportSummary, startRow int) {
	lines := []struct {
		label string
		value interface{}
	}{
		{"Общая выручка", cellValue(s.TotalRevenue)},
		{"Общая прибыль", cellValue(s.TotalNetProfit)},
		{"Средняя маржинальность", cellValue(s.MeanMarginRatio)},
		{"Товаров в плюсе", s.ProfitableCount},
		{"Товаров в минусе", s.UnprofitableCount},
		{"Общее количество продаж", s.TotalSalesCount},
	}
	for i, line := range lines {
		labelCell, _ := excelize.CoordinatesToCellName(1, startRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, startRow+i)
		_ = f.SetCellValue(reportSheetName, labelCell, line.label)
		_ = f.SetCellValue(reportSheetName, valueCell, line.value)
	}
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
