package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fxdisplay/internal/display"
	"fxdisplay/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AmountDTO struct {
	Currency string          `json:"currency" example:"USD"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
}

func (a AmountDTO) toDomain() domain.CurrencyAmount {
	return domain.CurrencyAmount{Currency: domain.NormalizeCode(a.Currency), Amount: a.Amount}
}

// RenderRequest describes one value. Kind selects which fields are read:
// plain uses currency and amount, converted adds original and rate, multi
// uses amounts and optionally total_in_base.
type RenderRequest struct {
	Kind        string               `json:"kind" example:"plain"`
	Currency    string               `json:"currency,omitempty" example:"USD"`
	Amount      decimal.Decimal      `json:"amount" swaggertype:"string" example:"100"`
	Original    *AmountDTO           `json:"original,omitempty"`
	Rate        *domain.ExchangeRate `json:"rate,omitempty"`
	Amounts     []AmountDTO          `json:"amounts,omitempty"`
	TotalInBase *AmountDTO           `json:"total_in_base,omitempty"`
}

func (req RenderRequest) value() (domain.Value, error) {
	switch display.ValueKind(strings.ToLower(strings.TrimSpace(req.Kind))) {
	case display.KindPlain, "":
		return domain.PlainAmount{CurrencyAmount: AmountDTO{Currency: req.Currency, Amount: req.Amount}.toDomain()}, nil
	case display.KindConverted:
		if req.Original == nil || req.Rate == nil {
			return nil, errors.New("converted value needs original and rate")
		}
		return domain.ConvertedAmount{
			Amount:   req.Amount,
			Currency: domain.NormalizeCode(req.Currency),
			Original: req.Original.toDomain(),
			Rate:     *req.Rate,
		}, nil
	case display.KindMulti:
		amounts := make([]domain.CurrencyAmount, 0, len(req.Amounts))
		for _, a := range req.Amounts {
			amounts = append(amounts, a.toDomain())
		}
		m, err := domain.NewMultiCurrencyAmount(amounts)
		if err != nil {
			return nil, err
		}
		if req.TotalInBase != nil {
			total := req.TotalInBase.toDomain()
			m.TotalInBase = &total
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown kind %q", req.Kind)
}

// RenderAmount godoc
// @Summary Render an amount
// @Description Formats a value with the session settings. Conversion problems degrade to native amounts plus notices.
// @Tags Display
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body RenderRequest true "Value"
// @Success 200 {object} display.AmountView
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/render [post]
func (h *Handler) RenderAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req RenderRequest
	if !decodeBody(w, r, 16<<10, &req) {
		return
	}
	v, err := req.value()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		writeServiceError(w, err, "RenderAmount", logrus.Fields{"session_id": id}, "failed to render amount")
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.RenderAmount(r.Context(), v, s))
}

type RenderBadgesRequest struct {
	Amounts    []AmountDTO `json:"amounts"`
	MaxVisible int         `json:"max_visible,omitempty" example:"3"`
}

// RenderBadges godoc
// @Summary Render a multi-currency badge
// @Description Session base currency first, then the rest in request order, with a +N marker for hidden currencies
// @Tags Display
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body RenderBadgesRequest true "Balances"
// @Success 200 {object} display.MultiBadge
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/badges [post]
func (h *Handler) RenderBadges(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req RenderBadgesRequest
	if !decodeBody(w, r, 16<<10, &req) {
		return
	}
	amounts := make([]domain.CurrencyAmount, 0, len(req.Amounts))
	for _, a := range req.Amounts {
		amounts = append(amounts, a.toDomain())
	}
	m, err := domain.NewMultiCurrencyAmount(amounts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		writeServiceError(w, err, "RenderBadges", logrus.Fields{"session_id": id}, "failed to render badges")
		return
	}
	badge, err := h.presenter.MultiBadge(m.Amounts, s.BaseCurrency, req.MaxVisible, s.RoundingMode)
	if err != nil {
		writeServiceError(w, err, "RenderBadges", logrus.Fields{"session_id": id}, "failed to render badges")
		return
	}
	writeJSON(w, http.StatusOK, badge)
}
