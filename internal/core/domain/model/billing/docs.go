// Package billing computes order totals.
//
// Bills are derived exclusively from catalog prices and quantities: the client
// never supplies a total. All arithmetic uses github.com/shopspring/decimal so
// that cents never drift.
//
//	totalPrice  = Σ price·quantity
//	tax         = round(TaxRate·totalPrice, 2)
//	deliveryFee = DeliveryFee when the order is delivered (takeaway), else 0
//	grandTotal  = totalPrice + tax + deliveryFee
package billing
