package services

import (
	"byway/models"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTaxPercent = 15

var hundred = decimal.NewFromInt(100)

// Pricing computes receipt totals in decimal arithmetic.
type Pricing struct {
	TaxPercent decimal.Decimal
	now        func() time.Time
	newNumber  func() string
}

func NewPricing(taxPercent float64) Pricing {
	if taxPercent < 0 {
		taxPercent = DefaultTaxPercent
	}
	return Pricing{
		TaxPercent: decimal.NewFromFloat(taxPercent),
		now:        time.Now,
		newNumber:  uuid.NewString,
	}
}

func DefaultPricing() Pricing {
	return NewPricing(DefaultTaxPercent)
}

func (p Pricing) Tax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.TaxPercent).Div(hundred)
}

// Discount takes percent off amount. Not applied to purchases.
func Discount(amount decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	return amount.Sub(amount.Mul(percent).Div(hundred))
}

// Receipt totals the courses in the given order. Amounts are rounded half away from zero to cents.
func (p Pricing) Receipt(courses []models.Course) *models.Receipt {
	subtotal := decimal.Zero
	items := make([]models.ReceiptItem, len(courses))
	for i, c := range courses {
		price := decimal.NewFromFloat(c.Price)
		subtotal = subtotal.Add(price)
		items[i] = models.ReceiptItem{CourseID: c.ID, Course: c.Name, Price: price.Round(2).InexactFloat64()}
	}
	tax := p.Tax(subtotal)
	total := subtotal.Add(tax)

	now, number := p.now, p.newNumber
	if now == nil {
		now = time.Now
	}
	if number == nil {
		number = uuid.NewString
	}
	return &models.Receipt{
		Number:     number(),
		Items:      items,
		Subtotal:   subtotal.Round(2).InexactFloat64(),
		Tax:        tax.Round(2).InexactFloat64(),
		TotalPrice: total.Round(2).InexactFloat64(),
		IssuedAt:   now().UTC(),
	}
}

// RoundMoney rounds to two decimals.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
