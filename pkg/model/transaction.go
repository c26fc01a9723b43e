package model

import (
	"github.com/shopspring/decimal"
)

// DocumentType classifies a ledger row by its source document.
type DocumentType int

const (
	DocOther DocumentType = iota
	DocSale
)

// PaymentReason is the marketplace's stated reason for the payment line.
type PaymentReason int

const (
	ReasonOther PaymentReason = iota
	ReasonLogistics
	ReasonPaidAcceptance
)

// AdjustmentType classifies service/adjustment lines.
type AdjustmentType int

const (
	AdjustmentOther AdjustmentType = iota
	AdjustmentPromotionService
)

// TransactionRecord is one row of the primary marketplace ledger.
// Rows with an empty product key never reach the aggregation stage.
type TransactionRecord struct {
	ProductKey       string          `json:"product_key"`
	DocumentType     DocumentType    `json:"document_type"`
	PaymentReason    PaymentReason   `json:"payment_reason"`
	AdjustmentType   AdjustmentType  `json:"adjustment_type"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	WbRealizedAmount decimal.Decimal `json:"wb_realized_amount"`
	AmountToSeller   decimal.Decimal `json:"amount_to_seller"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	TotalFines       decimal.Decimal `json:"total_fines"`
	StorageFee       decimal.Decimal `json:"storage_fee"`
}

// CostRecord is one row of the unit-cost ledger. Product keys are not
// unique-checked; on duplicates the merge keeps the last row.
type CostRecord struct {
	ProductKey string          `json:"product_key"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}
