package utils

// Multipart form fields of the report upload endpoint.
const (
	FORM_FIELD_REPORT_FILE = "report_file"
	FORM_FIELD_COST_FILE   = "cost_file"
	FORM_FIELD_TAX_RATE    = "tax_rate"
)

// Accepted workbook extensions.
const (
	EXT_XLSX = ".xlsx"
	EXT_XLS  = ".xls"
)

// Tax rate bounds enforced at the upload boundary; the engine itself only
// computes rate/100.
const (
	TAX_RATE_MIN = 0
	TAX_RATE_MAX = 100
)

// Header carrying the numeric admin id for internal endpoints.
const HEADER_ADMIN_ID = "x-admin-id"

const CONTENT_TYPE_XLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const REPORT_FILE_NAME = "wb_analytics_report.xlsx"
