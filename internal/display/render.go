// Package display turns amounts into view models for the dashboard: badges,
// formatted amounts with rate provenance, and notices. Rendering never fails;
// conversion errors degrade to native values plus a notice.
package display

import (
	"context"
	"fmt"
	"strings"

	"fxdisplay/internal/conversion"
	"fxdisplay/internal/domain"

	"github.com/jonboulle/clockwork"
)

type Registry interface {
	GetConfig(code domain.CurrencyCode) (domain.CurrencyConfig, error)
}

type Converter interface {
	ConvertWith(ctx context.Context, req conversion.Request) (domain.ConvertedAmount, error)
	Total(ctx context.Context, amounts []domain.CurrencyAmount, base domain.CurrencyCode, mode domain.RoundingMode, q domain.RateQuery) (conversion.Total, error)
}

type ValueKind string

const (
	KindPlain     ValueKind = "plain"
	KindConverted ValueKind = "converted"
	KindMulti     ValueKind = "multi"
)

// Provenance describes the rate behind a converted figure.
type Provenance struct {
	Text      string              `json:"text"`
	From      domain.CurrencyCode `json:"from"`
	To        domain.CurrencyCode `json:"to"`
	Rate      string              `json:"rate"`
	Date      string              `json:"date"`
	Source    domain.RateSource   `json:"source"`
	UpdatedAt string              `json:"updated_at,omitempty"`
	Stale     bool                `json:"stale"`
}

type AmountView struct {
	Kind       ValueKind           `json:"kind"`
	Text       string              `json:"text"`
	Currency   domain.CurrencyCode `json:"currency"`
	InBase     bool                `json:"in_base"`
	Lines      []string            `json:"lines,omitempty"`
	Badge      *MultiBadge         `json:"badge,omitempty"`
	Provenance []Provenance        `json:"provenance,omitempty"`
	Notices    []Notice            `json:"notices,omitempty"`
}

func (v *AmountView) addNotice(n Notice) {
	for _, existing := range v.Notices {
		if existing.Kind == n.Kind {
			return
		}
	}
	v.Notices = append(v.Notices, n)
}

type Presenter struct {
	registry   Registry
	converter  Converter
	clock      clockwork.Clock
	maxVisible int
}

// RenderAmount renders one value under the given settings.
func (p *Presenter) RenderAmount(ctx context.Context, v domain.Value, s domain.CurrencySettings) AmountView {
	switch val := v.(type) {
	case domain.PlainAmount:
		return p.renderPlain(ctx, val.CurrencyAmount, s)
	case domain.ConvertedAmount:
		return p.renderConverted(val, s)
	case domain.MultiCurrencyAmount:
		return p.renderMulti(ctx, val, s)
	default:
		view := AmountView{Kind: KindPlain}
		view.addNotice(NoticeForError(fmt.Errorf("%w: unsupported value %T", domain.ErrConversionFailed, v)))
		return view
	}
}

// Toggle flips native vs base-currency rendering. Stored amounts and rates
// are not touched; only the next render changes.
func Toggle(s domain.CurrencySettings) domain.CurrencySettings {
	s.ShowInBaseCurrency = !s.ShowInBaseCurrency
	return s
}

func (p *Presenter) renderPlain(ctx context.Context, a domain.CurrencyAmount, s domain.CurrencySettings) AmountView {
	view := AmountView{Kind: KindPlain}

	if s.ShowInBaseCurrency && a.Currency != s.BaseCurrency {
		converted, err := p.converter.ConvertWith(ctx, conversion.Request{
			Amount: a,
			To:     s.BaseCurrency,
			Mode:   s.RoundingMode,
			Query:  queryFor(s),
		})
		if err == nil {
			text, ok := p.format(domain.CurrencyAmount{Currency: converted.Currency, Amount: converted.Amount}, s)
			if ok {
				view.Text = text
				view.Currency = converted.Currency
				view.InBase = true
				p.attachProvenance(&view, converted, s)
				return view
			}
			err = fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, converted.Currency)
		}
		view.addNotice(NoticeForError(err))
	}

	p.renderNative(&view, a, s)
	return view
}

func (p *Presenter) renderConverted(c domain.ConvertedAmount, s domain.CurrencySettings) AmountView {
	view := AmountView{Kind: KindConverted}

	if s.ShowInBaseCurrency {
		if text, ok := p.format(domain.CurrencyAmount{Currency: c.Currency, Amount: c.Amount}, s); ok {
			view.Text = text
			view.Currency = c.Currency
			view.InBase = c.Currency == s.BaseCurrency
			p.attachProvenance(&view, c, s)
			return view
		}
		view.addNotice(NoticeForError(fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, c.Currency)))
	}

	p.renderNative(&view, c.Original, s)
	return view
}

func (p *Presenter) renderMulti(ctx context.Context, m domain.MultiCurrencyAmount, s domain.CurrencySettings) AmountView {
	view := AmountView{Kind: KindMulti}

	if badge, err := p.MultiBadge(m.Amounts, s.BaseCurrency, p.maxVisible, s.RoundingMode); err == nil {
		view.Badge = &badge
	}
	for _, a := range OrderForDisplay(m.Amounts, s.BaseCurrency) {
		text, ok := p.format(a, s)
		if !ok {
			text = FormatUnknown(a)
		}
		view.Lines = append(view.Lines, text)
	}

	if !s.ShowInBaseCurrency {
		view.Text = strings.Join(view.Lines, " + ")
		return view
	}

	total, err := p.converter.Total(ctx, m.Amounts, s.BaseCurrency, s.RoundingMode, queryFor(s))

	// a total supplied in the base currency wins over the recomputed one
	if supplied := m.TotalInBase; supplied != nil && supplied.Currency == s.BaseCurrency {
		if text, ok := p.format(*supplied, s); ok {
			view.Text = text
			view.Currency = supplied.Currency
			view.InBase = true
			if err == nil {
				p.attachTotalProvenance(&view, total, s)
			}
			return view
		}
	}

	if err != nil {
		view.Text = strings.Join(view.Lines, " + ")
		view.addNotice(NoticeForError(err))
		return view
	}

	text, ok := p.format(total.Amount, s)
	if !ok {
		view.Text = strings.Join(view.Lines, " + ")
		view.addNotice(NoticeForError(fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, total.Amount.Currency)))
		return view
	}
	view.Text = text
	view.Currency = total.Amount.Currency
	view.InBase = true
	p.attachTotalProvenance(&view, total, s)
	return view
}

// attachTotalProvenance lists the rates behind a total and flags the stalest
// one and mixed dates.
func (p *Presenter) attachTotalProvenance(view *AmountView, total conversion.Total, s domain.CurrencySettings) {
	var stalest *domain.ExchangeRate
	for _, c := range total.Conversions {
		if !c.UsedRate() {
			continue
		}
		view.Provenance = append(view.Provenance, p.provenance(c.Rate, s))
		if c.Rate.Stale && (stalest == nil || c.Rate.UpdatedAt.Before(stalest.UpdatedAt)) {
			r := c.Rate
			stalest = &r
		}
	}
	if stalest != nil {
		view.addNotice(StaleNotice(*stalest, p.clock.Now()))
	}
	if total.MixedDates {
		view.addNotice(MixedDatesNotice())
	}
}

func (p *Presenter) renderNative(view *AmountView, a domain.CurrencyAmount, s domain.CurrencySettings) {
	view.Currency = a.Currency
	view.InBase = a.Currency == s.BaseCurrency
	text, ok := p.format(a, s)
	if !ok {
		view.Text = FormatUnknown(a)
		view.addNotice(NoticeForError(fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, a.Currency)))
		return
	}
	view.Text = text
}

func (p *Presenter) attachProvenance(view *AmountView, c domain.ConvertedAmount, s domain.CurrencySettings) {
	if !c.UsedRate() {
		return
	}
	view.Provenance = append(view.Provenance, p.provenance(c.Rate, s))
	if c.Rate.Stale {
		view.addNotice(StaleNotice(c.Rate, p.clock.Now()))
	}
}

// provenance renders "1 USD = 0.9200 EUR, dated 2026-10-18, source backend".
func (p *Presenter) provenance(r domain.ExchangeRate, s domain.CurrencySettings) Provenance {
	date := r.Date.Format(domain.DateLayout)
	pr := Provenance{
		Text:   fmt.Sprintf("1 %s = %s %s, dated %s, source %s", r.From, FormatRate(r.Value), r.To, date, r.Source),
		From:   r.From,
		To:     r.To,
		Rate:   FormatRate(r.Value),
		Date:   date,
		Source: r.Source,
		Stale:  r.Stale,
	}
	if !r.UpdatedAt.IsZero() {
		pr.UpdatedAt = r.UpdatedAt.In(s.Location()).Format("2006-01-02 15:04 MST")
	}
	return pr
}

func (p *Presenter) format(a domain.CurrencyAmount, s domain.CurrencySettings) (string, bool) {
	cfg, err := p.registry.GetConfig(a.Currency)
	if err != nil {
		return "", false
	}
	return FormatMoney(a.Amount, cfg, s.RoundingMode), true
}

func queryFor(s domain.CurrencySettings) domain.RateQuery {
	return domain.RateQuery{Source: s.FxSource, AsOf: s.FxAsOf}
}

func NewPresenter(registry Registry, converter Converter, clock clockwork.Clock, maxVisible int) *Presenter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisibleBadges
	}
	return &Presenter{registry: registry, converter: converter, clock: clock, maxVisible: maxVisible}
}
