// Package pricing computes per-line profit from the ledger's purchase price
// and a sale price. The shop ran several bookkeeping rules over time; each
// survives as a selectable Mode rather than being collapsed into one formula.
package pricing

import (
	"fmt"
	"math"

	"janudairy/m/domain"
)

// Mode selects the profit formula.
type Mode string

const (
	// ModeNet applies the discount percentage to both legs and compares nets.
	ModeNet Mode = "net"
	// ModeGrossUp is ModeNet plus GST-inclusive figures reported alongside.
	ModeGrossUp Mode = "grossup"
	// ModeAdditiveGST adds GST and subtracts an absolute discount on each leg
	// independently, then compares the final amounts.
	ModeAdditiveGST Mode = "additive"
	// ModeZero compares raw prices with no GST or discount adjustment.
	ModeZero Mode = "zero"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNet, ModeGrossUp, ModeAdditiveGST, ModeZero:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown pricing mode %q", s)
}

// PercentSource selects whose GST/discount percentages apply to the sale leg.
type PercentSource string

const (
	// SourcePurchase applies the stored purchase record's percentages to the
	// sale leg as well.
	SourcePurchase PercentSource = "purchase"
	// SourceSale applies the sale's own percentages to the sale leg.
	SourceSale PercentSource = "sale"
)

// ParsePercentSource validates a percent-source string from configuration.
func ParsePercentSource(s string) (PercentSource, error) {
	switch PercentSource(s) {
	case SourcePurchase, SourceSale:
		return PercentSource(s), nil
	}
	return "", fmt.Errorf("unknown percent source %q", s)
}

// SaleInput is the sale leg of one line item. GSTPercent and DiscountPercent
// are consulted only under SourceSale, except in ModeAdditiveGST where each
// leg always uses its own inputs and DiscountPercent is read as an absolute
// amount.
type SaleInput struct {
	Price           float64
	GSTPercent      float64
	DiscountPercent float64
}

// Breakdown is the unrounded result of one line. Round only for display.
type Breakdown struct {
	PurchaseNet   float64
	PurchaseGross float64
	SaleNet       float64
	SaleGross     float64
	Profit        float64
}

// Calculator applies one pricing mode.
type Calculator struct {
	Mode   Mode
	Source PercentSource
}

// Line computes the profit breakdown for a single sold item. An item with no
// purchase history arrives as the zero ItemPrice; its purchase legs stay zero
// and the profit equals the sale-side figure.
func (c Calculator) Line(purchase domain.ItemPrice, sale SaleInput) Breakdown {
	switch c.Mode {
	case ModeAdditiveGST:
		purchaseFinal := purchase.BasePrice + purchase.BasePrice*purchase.GSTPercent/100 - purchase.DiscountPercent
		saleFinal := sale.Price + sale.Price*sale.GSTPercent/100 - sale.DiscountPercent
		return Breakdown{
			PurchaseNet:   purchase.BasePrice,
			PurchaseGross: purchaseFinal,
			SaleNet:       sale.Price,
			SaleGross:     saleFinal,
			Profit:        saleFinal - purchaseFinal,
		}
	case ModeZero:
		return Breakdown{
			PurchaseNet:   purchase.BasePrice,
			PurchaseGross: purchase.BasePrice,
			SaleNet:       sale.Price,
			SaleGross:     sale.Price,
			Profit:        sale.Price - purchase.BasePrice,
		}
	}

	saleGST := purchase.GSTPercent
	saleDiscount := purchase.DiscountPercent
	if c.Source == SourceSale {
		saleGST = sale.GSTPercent
		saleDiscount = sale.DiscountPercent
	}

	purchaseNet := purchase.BasePrice * (1 - purchase.DiscountPercent/100)
	saleNet := sale.Price * (1 - saleDiscount/100)

	b := Breakdown{
		PurchaseNet:   purchaseNet,
		PurchaseGross: purchaseNet,
		SaleNet:       saleNet,
		SaleGross:     saleNet,
		Profit:        saleNet - purchaseNet,
	}
	if c.Mode == ModeGrossUp {
		b.PurchaseGross = purchaseNet * (1 + purchase.GSTPercent/100)
		b.SaleGross = saleNet * (1 + saleGST/100)
	}
	return b
}

// Round2 rounds a monetary value to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
