package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter localizes numbers for report output.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter builds a Formatter for a BCP 47 locale and a currency code.
// An unparseable locale falls back to German.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.German
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

func (f *Formatter) Money(v float64) string {
	return f.printer.Sprintf("%.0f %s", v, f.currency)
}

func (f *Formatter) MoneyRange(min, max float64) string {
	return f.printer.Sprintf("%.0f - %.0f %s", min, max, f.currency)
}

func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.1f %%", v)
}

func (f *Formatter) Days(min, max float64) string {
	return f.printer.Sprintf("%.0f - %.0f PT", min, max)
}
