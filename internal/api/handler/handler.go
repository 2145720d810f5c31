package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fxdisplay/internal/adapters"
	"fxdisplay/internal/conversion"
	"fxdisplay/internal/display"
	"fxdisplay/internal/domain"
	"fxdisplay/internal/rate"
	"fxdisplay/internal/settings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Registry interface {
	SupportedCodes() []domain.CurrencyCode
	GetConfig(code domain.CurrencyCode) (domain.CurrencyConfig, error)
	ValidateConversion(from, to domain.CurrencyCode) error
	ValidatePair(from, to domain.CurrencyCode) error
}

type RateService interface {
	GetRate(ctx context.Context, pair domain.RatePair, q domain.RateQuery) (domain.ExchangeRate, error)
	SetFixedRate(from, to domain.CurrencyCode, value decimal.Decimal, date time.Time) (domain.ExchangeRate, error)
	Refresh(ctx context.Context) (string, error)
	Snapshot() rate.Snapshot
}

type Converter interface {
	ConvertWith(ctx context.Context, req conversion.Request) (domain.ConvertedAmount, error)
}

type SessionService interface {
	Create() (*domain.Session, error)
	Get(id uuid.UUID) (domain.CurrencySettings, error)
	View(id uuid.UUID) (settings.View, error)
	Apply(id uuid.UUID, p settings.Patch) (domain.CurrencySettings, error)
	Toggle(id uuid.UUID) (domain.CurrencySettings, error)
	Delete(id uuid.UUID)
}

type Presenter interface {
	Badge(code domain.CurrencyCode) (display.Badge, error)
	MultiBadge(amounts []domain.CurrencyAmount, primary domain.CurrencyCode, maxVisible int, mode domain.RoundingMode) (display.MultiBadge, error)
	RenderAmount(ctx context.Context, v domain.Value, s domain.CurrencySettings) display.AmountView
}

type Handler struct {
	registry  Registry
	rates     RateService
	converter Converter
	sessions  SessionService
	presenter Presenter
	prefs     adapters.PreferenceRepository
}

func NewHandler(registry Registry, rates RateService, converter Converter, sessions SessionService, presenter Presenter, prefs adapters.PreferenceRepository) *Handler {
	return &Handler{
		registry:  registry,
		rates:     rates,
		converter: converter,
		sessions:  sessions,
		presenter: presenter,
		prefs:     prefs,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads a size-limited JSON body and rejects unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to status codes. Anything unexpected is
// logged and reported as 500 with msg.
func writeServiceError(w http.ResponseWriter, err error, handler string, fields logrus.Fields, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrNoFxRate):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrEmptyAmounts),
		errors.Is(err, domain.ErrDuplicateCurrency):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConversionFailed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["handler"] = handler
		logrus.WithError(err).WithFields(fields).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func parseSessionID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}
