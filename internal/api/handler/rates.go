package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fxdisplay/internal/domain"
	"fxdisplay/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GetRate godoc
// @Summary Get exchange rate
// @Description Rate for one unit of from in to. Falls back to the inverse pair and, for historical lookups, to the rate history.
// @Tags Rates
// @Produce json
// @Param from path string true "Source currency" example(USD)
// @Param to path string true "Target currency" example(EUR)
// @Param source query string false "backend, fixed or historical" default(backend)
// @Param as_of query string false "Rate date, YYYY-MM-DD"
// @Success 200 {object} domain.ExchangeRate
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates/{from}/{to} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	from := domain.NormalizeCode(chi.URLParam(r, "from"))
	to := domain.NormalizeCode(chi.URLParam(r, "to"))
	if err := h.registry.ValidateConversion(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := domain.RateQuery{Source: domain.SourceBackend}
	if raw := strings.TrimSpace(r.URL.Query().Get("source")); raw != "" {
		q.Source = domain.RateSource(strings.ToLower(raw))
		if !q.Source.Valid() {
			writeError(w, http.StatusBadRequest, "unknown source "+raw)
			return
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.AsOf = &d
	}

	fx, err := h.rates.GetRate(r.Context(), domain.RatePair{From: from, To: to}, q)
	if err != nil {
		writeServiceError(w, err, "GetRate", logrus.Fields{"from": from, "to": to, "source": q.Source}, "ups, couldn't get rate this time")
		return
	}
	writeJSON(w, http.StatusOK, fx)
}

type RefreshRatesResponse struct {
	ExecID string        `json:"exec_id"`
	Status rate.Snapshot `json:"status"`
}

// RefreshRates godoc
// @Summary Refresh backend rates
// @Description Fetches fresh rates from the upstream API. A failed refresh keeps the last known rates.
// @Tags Rates
// @Produce json
// @Success 200 {object} RefreshRatesResponse
// @Failure 502 {object} RefreshRatesResponse
// @Router /rates/refresh [post]
func (h *Handler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	execID, err := h.rates.Refresh(r.Context())
	res := RefreshRatesResponse{ExecID: execID, Status: h.rates.Snapshot()}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "RefreshRates", "exec_id": execID}).Warn("rate refresh failed, keeping last known rates")
		writeJSON(w, http.StatusBadGateway, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type SetFixedRateRequest struct {
	From string          `json:"from" example:"USD"`
	To   string          `json:"to" example:"EUR"`
	Rate decimal.Decimal `json:"rate" swaggertype:"string" example:"0.92"`
	Date string          `json:"date,omitempty" example:"2026-10-18"`
}

// SetFixedRate godoc
// @Summary Pin a fixed rate
// @Description Stores a manually entered rate under the fixed source. Backend refreshes never overwrite it.
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body SetFixedRateRequest true "Fixed rate"
// @Success 200 {object} domain.ExchangeRate
// @Failure 400 {object} errorResponse
// @Router /rates/fixed [put]
func (h *Handler) SetFixedRate(w http.ResponseWriter, r *http.Request) {
	var req SetFixedRateRequest
	if !decodeBody(w, r, 512, &req) {
		return
	}
	from, to := domain.NormalizeCode(req.From), domain.NormalizeCode(req.To)
	if err := h.registry.ValidatePair(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Rate.IsPositive() {
		writeError(w, http.StatusBadRequest, "rate must be positive")
		return
	}

	// zero date means today
	var date time.Time
	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	fx, err := h.rates.SetFixedRate(from, to, req.Rate, date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err, "SetFixedRate", logrus.Fields{"from": from, "to": to}, "failed to set fixed rate")
		return
	}
	writeJSON(w, http.StatusOK, fx)
}

// GetRateStatus godoc
// @Summary Rate store status
// @Description Refresh state, last error and every rate currently held in memory
// @Tags Rates
// @Produce json
// @Success 200 {object} rate.Snapshot
// @Router /rates/status [get]
func (h *Handler) GetRateStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.rates.Snapshot())
}
