package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prices formats whole-unit amounts for one currency, e.g. "₹1,019".
type Prices struct {
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewPrices builds a formatter for an ISO 4217 code such as "INR".
func NewPrices(code string) (*Prices, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}

	p := message.NewPrinter(language.English)
	return &Prices{
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
	}, nil
}

// Code returns the ISO currency code.
func (p *Prices) Code() string {
	return p.unit.String()
}

// Symbol returns the narrow currency symbol.
func (p *Prices) Symbol() string {
	return p.symbol
}

// Format renders amount with the currency symbol and digit grouping.
func (p *Prices) Format(amount int64) string {
	if amount < 0 {
		return "-" + p.symbol + p.printer.Sprintf("%d", -amount)
	}
	return p.symbol + p.printer.Sprintf("%d", amount)
}
