package billing

import (
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const taxPlaces = 2

var (
	// DefaultTaxRate is the 5% tax applied to every order.
	DefaultTaxRate = decimal.RequireFromString("0.05")

	// DefaultDeliveryFee is the flat fee charged on takeaway orders.
	DefaultDeliveryFee = decimal.NewFromInt(50)
)

// Line is a priced quantity on a bill.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Bill holds the derived totals of an order.
type Bill struct {
	TotalPrice  decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Calculator applies a tax rate and a delivery fee to a list of lines.
// The zero value is not usable; use NewCalculator or DefaultCalculator.
type Calculator struct {
	taxRate     decimal.Decimal
	deliveryFee decimal.Decimal
}

// NewCalculator builds a calculator with a custom tax rate and delivery fee.
func NewCalculator(taxRate, deliveryFee decimal.Decimal) (Calculator, error) {
	if taxRate.IsNegative() {
		return Calculator{}, errs.NewValueIsInvalidErrorWithCause("taxRate", fmt.Errorf("%s is negative", taxRate))
	}
	if deliveryFee.IsNegative() {
		return Calculator{}, errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%s is negative", deliveryFee))
	}
	return Calculator{taxRate: taxRate, deliveryFee: deliveryFee}, nil
}

// DefaultCalculator uses DefaultTaxRate and DefaultDeliveryFee.
func DefaultCalculator() Calculator {
	return Calculator{taxRate: DefaultTaxRate, deliveryFee: DefaultDeliveryFee}
}

// Compute derives the bill for lines. delivered selects the delivery fee.
//
// Example:
//
//	bill, _ := billing.DefaultCalculator().Compute([]billing.Line{
//	    {Price: decimal.NewFromInt(100), Quantity: 2},
//	    {Price: decimal.NewFromInt(50), Quantity: 1},
//	}, true)
//	// bill.TotalPrice = 250, bill.Tax = 12.5, bill.DeliveryFee = 50, bill.GrandTotal = 312.5
func (c Calculator) Compute(lines []Line, delivered bool) (Bill, error) {
	total := decimal.Zero
	for i, line := range lines {
		if line.Quantity < 1 {
			return Bill{}, errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), line.Quantity, 1, "unbounded")
		}
		if line.Price.IsNegative() {
			return Bill{}, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].price", i), fmt.Errorf("%s is negative", line.Price))
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := total.Mul(c.taxRate).Round(taxPlaces)

	fee := decimal.Zero
	if delivered {
		fee = c.deliveryFee
	}

	return Bill{
		TotalPrice:  total,
		Tax:         tax,
		DeliveryFee: fee,
		GrandTotal:  total.Add(tax).Add(fee),
	}, nil
}
