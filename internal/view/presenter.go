// Package view computes UI-ready values from raw catalog records. Everything
// here is a pure function of its input; the Presenter only carries locale and
// media configuration.
package view

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront/client/internal/config"
)

// PriceUnavailable is rendered for absent or zero prices instead of a
// formatted zero.
const PriceUnavailable = "N/A"

type Presenter struct {
	printer        *message.Printer
	unit           currency.Unit
	mediaBaseURL   string
	placeholderURL string
}

func NewPresenter(media config.MediaConfig, locale config.LocaleConfig) (*Presenter, error) {
	tag, err := language.Parse(locale.Tag)
	if err != nil {
		return nil, fmt.Errorf("parse locale tag %q: %w", locale.Tag, err)
	}
	unit, err := currency.ParseISO(locale.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", locale.Currency, err)
	}

	return &Presenter{
		printer:        message.NewPrinter(tag),
		unit:           unit,
		mediaBaseURL:   strings.TrimRight(media.BaseURL, "/"),
		placeholderURL: media.PlaceholderURL,
	}, nil
}

// FormatPrice renders a price as localized currency text.
func (p *Presenter) FormatPrice(price float64) string {
	if price <= 0 {
		return PriceUnavailable
	}
	return p.printer.Sprint(currency.Symbol(p.unit.Amount(price)))
}

// DiscountPercent computes the rounded percentage off the original price.
// Records without a meaningful original price carry no discount, and the
// result is clamped to [0, 100] so bad data never renders a negative badge.
func DiscountPercent(price, oldPrice float64) int {
	if oldPrice <= 0 {
		return 0
	}
	pct := int(math.Round(((oldPrice - price) / oldPrice) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ImageURL normalizes a stored image reference for display. Legacy server
// records hold Windows filesystem paths from the F: or D: drives of the
// original media host; those are rewritten onto the media server by filename.
// Ready URLs pass through untouched and absent values get the placeholder.
func (p *Presenter) ImageURL(path string) string {
	if path == "" {
		return p.placeholderURL
	}
	if strings.HasPrefix(path, `F:\`) || strings.HasPrefix(path, `D:\`) {
		parts := strings.Split(path, `\`)
		return p.mediaBaseURL + "/" + parts[len(parts)-1]
	}
	return path
}
