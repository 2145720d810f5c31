package handler

import (
	"net/http"
	"strings"

	"fxdisplay/internal/conversion"
	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	From         string          `json:"from" example:"USD"`
	To           string          `json:"to" example:"EUR"`
	RoundingMode string          `json:"rounding_mode,omitempty" example:"banker"`
	Source       string          `json:"source,omitempty" example:"backend"`
	AsOf         string          `json:"as_of,omitempty" example:"2026-10-18"`
}

type ConvertResponse struct {
	domain.ConvertedAmount
	UsedRate bool `json:"used_rate"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts and rounds to the target currency precision. Identity and zero amounts never consult the rate store.
// @Tags Conversion
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeBody(w, r, 1024, &req) {
		return
	}

	from, to := domain.NormalizeCode(req.From), domain.NormalizeCode(req.To)
	if err := h.registry.ValidateConversion(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := domain.RoundBanker
	if req.RoundingMode != "" {
		m, err := domain.ParseRoundingMode(strings.ToLower(strings.TrimSpace(req.RoundingMode)))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	q := domain.RateQuery{Source: domain.SourceBackend}
	if req.Source != "" {
		q.Source = domain.RateSource(strings.ToLower(strings.TrimSpace(req.Source)))
		if !q.Source.Valid() {
			writeError(w, http.StatusBadRequest, "unknown source "+req.Source)
			return
		}
	}
	if req.AsOf != "" {
		d, err := domain.ParseDate(req.AsOf)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.AsOf = &d
	}

	res, err := h.converter.ConvertWith(r.Context(), conversion.Request{
		Amount: domain.CurrencyAmount{Currency: from, Amount: req.Amount},
		To:     to,
		Mode:   mode,
		Query:  q,
	})
	if err != nil {
		writeServiceError(w, err, "Convert", logrus.Fields{"from": from, "to": to}, "conversion failed unexpectedly")
		return
	}
	writeJSON(w, http.StatusOK, ConvertResponse{ConvertedAmount: res, UsedRate: res.UsedRate()})
}
