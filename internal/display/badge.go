package display

import (
	"fmt"
	"slices"

	"fxdisplay/internal/domain"
)

const DefaultMaxVisibleBadges = 3

type Badge struct {
	Code       domain.CurrencyCode `json:"code"`
	Symbol     string              `json:"symbol"`
	Flag       string              `json:"flag"`
	Name       string              `json:"name"`
	ColorClass string              `json:"color_class"`
}

type BalanceLine struct {
	Badge     Badge  `json:"badge"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

// MultiBadge is the collapsed view of several currencies. Details always
// holds every currency, in display order.
type MultiBadge struct {
	Visible  []Badge       `json:"visible"`
	Overflow int           `json:"overflow"`
	More     string        `json:"more,omitempty"`
	Details  []BalanceLine `json:"details"`
}

func badgeFrom(cfg domain.CurrencyConfig) Badge {
	return Badge{
		Code:       cfg.Code,
		Symbol:     cfg.Symbol,
		Flag:       cfg.Flag,
		Name:       cfg.Name,
		ColorClass: cfg.ColorClass,
	}
}

func (p *Presenter) Badge(code domain.CurrencyCode) (Badge, error) {
	cfg, err := p.registry.GetConfig(code)
	if err != nil {
		return Badge{}, err
	}
	return badgeFrom(cfg), nil
}

// MultiBadge orders amounts with primary first and the rest in input order,
// then shows at most maxVisible badges with a "+N" overflow marker.
func (p *Presenter) MultiBadge(amounts []domain.CurrencyAmount, primary domain.CurrencyCode, maxVisible int, mode domain.RoundingMode) (MultiBadge, error) {
	if len(amounts) == 0 {
		return MultiBadge{}, domain.ErrEmptyAmounts
	}
	if maxVisible <= 0 {
		maxVisible = p.maxVisible
	}

	ordered := OrderForDisplay(amounts, primary)
	mb := MultiBadge{
		Visible: make([]Badge, 0, min(maxVisible, len(ordered))),
		Details: make([]BalanceLine, 0, len(ordered)),
	}
	for i, a := range ordered {
		cfg, err := p.registry.GetConfig(a.Currency)
		if err != nil {
			return MultiBadge{}, err
		}
		b := badgeFrom(cfg)
		if i < maxVisible {
			mb.Visible = append(mb.Visible, b)
		}
		mb.Details = append(mb.Details, BalanceLine{
			Badge:     b,
			Amount:    a.Amount.String(),
			Formatted: FormatMoney(a.Amount, cfg, mode),
		})
	}
	if hidden := len(ordered) - len(mb.Visible); hidden > 0 {
		mb.Overflow = hidden
		mb.More = fmt.Sprintf("+%d", hidden)
	}
	return mb, nil
}

// OrderForDisplay returns a copy of amounts with primary moved to the front;
// the other currencies keep their input order.
func OrderForDisplay(amounts []domain.CurrencyAmount, primary domain.CurrencyCode) []domain.CurrencyAmount {
	ordered := slices.Clone(amounts)
	slices.SortStableFunc(ordered, func(a, b domain.CurrencyAmount) int {
		switch {
		case a.Currency == b.Currency:
			return 0
		case a.Currency == primary:
			return -1
		case b.Currency == primary:
			return 1
		}
		return 0
	})
	return ordered
}
