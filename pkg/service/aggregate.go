package service

import (
	"sort"

	"finan/ms-seller-analytics/pkg/model"

	"github.com/shopspring/decimal"
)

// productAccumulator collects the per-product partial sums of every
// subset mask before the left-join.
type productAccumulator struct {
	salesCount        int64
	retailPriceSum    decimal.Decimal
	wbRealizedSum     decimal.Decimal
	amountToSellerSum decimal.Decimal
	finesSum          decimal.Decimal
	deliveryFeeSum    decimal.Decimal
	storageFeeSum     decimal.Decimal
	promotionSum      decimal.Decimal
	paidAcceptanceSum decimal.Decimal
}

// Aggregate partitions ledger records by subset masks and rolls them up
// per product key:
//
//   - sale rows feed count, retail price mean/sum, wb-realized mean,
//     amount-to-seller and fines sums;
//   - logistics rows feed the delivery fee sum;
//   - every row feeds the storage fee sum, storage applies regardless of
//     transaction type;
//   - promotion-service rows feed the promotion sum (wb-realized column);
//   - paid-acceptance rows feed the paid-acceptance sum (delivery column).
//
// The result is the union of keys over all subsets with absent categories
// filled with zero, sorted ascending by product key. Output is a pure
// function of the record multiset, independent of input order.
func Aggregate(records []model.TransactionRecord) model.AggregateTable {
	accs := make(map[string]*productAccumulator)
	hasPaidAcceptance := false

	get := func(key string) *productAccumulator {
		acc, ok := accs[key]
		if !ok {
			acc = &productAccumulator{}
			accs[key] = acc
		}
		return acc
	}

	for _, r := range records {
		acc := get(r.ProductKey)

		// Full unfiltered set: storage.
		acc.storageFeeSum = acc.storageFeeSum.Add(r.StorageFee)

		if r.DocumentType == model.DocSale {
			acc.salesCount++
			acc.retailPriceSum = acc.retailPriceSum.Add(r.RetailPrice)
			acc.wbRealizedSum = acc.wbRealizedSum.Add(r.WbRealizedAmount)
			acc.amountToSellerSum = acc.amountToSellerSum.Add(r.AmountToSeller)
			acc.finesSum = acc.finesSum.Add(r.TotalFines)
		}
		if r.PaymentReason == model.ReasonLogistics {
			acc.deliveryFeeSum = acc.deliveryFeeSum.Add(r.DeliveryFee)
		}
		if r.AdjustmentType == model.AdjustmentPromotionService {
			acc.promotionSum = acc.promotionSum.Add(r.WbRealizedAmount)
		}
		if r.PaymentReason == model.ReasonPaidAcceptance {
			hasPaidAcceptance = true
			acc.paidAcceptanceSum = acc.paidAcceptanceSum.Add(r.DeliveryFee)
		}
	}

	keys := make([]string, 0, len(accs))
	for key := range accs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := model.AggregateTable{
		Rows:              make([]model.ProductAggregate, 0, len(keys)),
		HasPaidAcceptance: hasPaidAcceptance,
	}
	for _, key := range keys {
		acc := accs[key]
		row := model.ProductAggregate{
			ProductKey:        key,
			SalesCount:        acc.salesCount,
			Revenue:           acc.retailPriceSum,
			AmountToSellerSum: acc.amountToSellerSum,
			DeliveryFeeSum:    acc.deliveryFeeSum,
			FinesSum:          acc.finesSum,
			StorageFee:        acc.storageFeeSum,
			PromotionAmount:   acc.promotionSum,
			PaidAcceptance:    acc.paidAcceptanceSum,
		}
		if acc.salesCount > 0 {
			count := decimal.NewFromInt(acc.salesCount)
			row.AvgRetailPrice = acc.retailPriceSum.Div(count)
			row.AvgWbRealized = acc.wbRealizedSum.Div(count)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
