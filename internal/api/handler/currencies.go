package handler

import (
	"errors"
	"net/http"

	"fxdisplay/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ListCurrenciesResponse struct {
	Currencies []domain.CurrencyConfig `json:"currencies"`
}

// ListCurrencies godoc
// @Summary List supported currencies
// @Description Display metadata (symbol, flag, precision, color) of every supported currency
// @Tags Currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, _ *http.Request) {
	codes := h.registry.SupportedCodes()
	res := ListCurrenciesResponse{Currencies: make([]domain.CurrencyConfig, 0, len(codes))}
	for _, code := range codes {
		cfg, err := h.registry.GetConfig(code)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListCurrencies", "code": code}).Warn("supported code without config")
			continue
		}
		res.Currencies = append(res.Currencies, cfg)
	}
	writeJSON(w, http.StatusOK, res)
}

// GetCurrency godoc
// @Summary Get currency config
// @Tags Currencies
// @Produce json
// @Param code path string true "ISO 4217 code" example(USD)
// @Success 200 {object} domain.CurrencyConfig
// @Failure 404 {object} errorResponse
// @Router /currencies/{code} [get]
func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	cfg, err := h.registry.GetConfig(code)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeServiceError(w, err, "GetCurrency", logrus.Fields{"code": code}, "failed to get currency")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// GetBadge godoc
// @Summary Get currency badge
// @Tags Currencies
// @Produce json
// @Param code path string true "ISO 4217 code" example(EUR)
// @Success 200 {object} display.Badge
// @Failure 404 {object} errorResponse
// @Router /currencies/{code}/badge [get]
func (h *Handler) GetBadge(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	badge, err := h.presenter.Badge(code)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeServiceError(w, err, "GetBadge", logrus.Fields{"code": code}, "failed to build badge")
		return
	}
	writeJSON(w, http.StatusOK, badge)
}
