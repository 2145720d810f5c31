package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"fxdisplay/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_GetRate_LiveHit(t *testing.T) {
	store, _ := loadedStore(t, fetched("USD", "EUR", "0.92", rateDate))
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)

	r, err := s.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, domain.RateQuery{})

	require.NoError(t, err)
	require.Equal(t, domain.SourceBackend, r.Source)
	mockHistory.AssertNotCalled(t, "GetOnOrBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetRate_LiveMissWithoutAsOfDoesNotHitHistory(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)

	_, err := s.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, domain.RateQuery{Source: domain.SourceBackend})

	require.ErrorIs(t, err, domain.ErrNoFxRate)
	mockHistory.AssertNotCalled(t, "GetOnOrBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetRate_AsOfMissFallsBackToHistory(t *testing.T) {
	store, _ := loadedStore(t, fetched("USD", "EUR", "0.92", rateDate))
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	asOf := rateDate.AddDate(0, 0, -10)
	pair := domain.RatePair{From: "USD", To: "EUR"}

	mockHistory.On("GetOnOrBefore", mock.Anything, pair, asOf).
		Return(domain.ExchangeRate{From: "USD", To: "EUR", Value: dec("0.90"), Date: asOf.AddDate(0, 0, -1), Source: domain.SourceBackend}, nil).Once()

	r, err := s.GetRate(context.Background(), pair, domain.RateQuery{Source: domain.SourceBackend, AsOf: &asOf})

	require.NoError(t, err)
	require.Equal(t, "0.9", r.Value.String())
	require.Equal(t, domain.SourceHistorical, r.Source)
	require.False(t, r.Stale)
	mockHistory.AssertExpectations(t)
}

func TestService_GetRate_HistoricalUsesInverse(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	asOf := rateDate.AddDate(0, -1, 0)
	pair := domain.RatePair{From: "EUR", To: "USD"}

	mockHistory.On("GetOnOrBefore", mock.Anything, pair, asOf).Return(domain.ExchangeRate{}, domain.ErrNoFxRate).Once()
	mockHistory.On("GetOnOrBefore", mock.Anything, pair.Reversed(), asOf).
		Return(domain.ExchangeRate{From: "USD", To: "EUR", Value: dec("0.8"), Date: asOf}, nil).Once()

	r, err := s.GetRate(context.Background(), pair, domain.RateQuery{Source: domain.SourceHistorical, AsOf: &asOf})

	require.NoError(t, err)
	require.Equal(t, domain.CurrencyCode("EUR"), r.From)
	require.Equal(t, "1.25", r.Value.String())
	mockHistory.AssertExpectations(t)
}

func TestService_GetRate_HistoricalTooOld(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	asOf := rateDate
	pair := domain.RatePair{From: "USD", To: "EUR"}

	mockHistory.On("GetOnOrBefore", mock.Anything, pair, asOf).
		Return(domain.ExchangeRate{From: "USD", To: "EUR", Value: dec("0.8"), Date: asOf.AddDate(0, 0, -30)}, nil).Once()

	_, err := s.GetRate(context.Background(), pair, domain.RateQuery{Source: domain.SourceHistorical, AsOf: &asOf})

	require.ErrorIs(t, err, domain.ErrNoFxRate)
}

func TestService_GetRate_HistoricalDefaultsToToday(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	pair := domain.RatePair{From: "USD", To: "EUR"}

	mockHistory.On("GetOnOrBefore", mock.Anything, pair, rateDate).
		Return(domain.ExchangeRate{From: "USD", To: "EUR", Value: dec("0.8"), Date: rateDate}, nil).Once()

	_, err := s.GetRate(context.Background(), pair, domain.RateQuery{Source: domain.SourceHistorical})

	require.NoError(t, err)
	mockHistory.AssertExpectations(t)
}

func TestService_GetRate_HistoricalRepoError(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	pair := domain.RatePair{From: "USD", To: "EUR"}
	wantErr := errors.New("db fail")

	mockHistory.On("GetOnOrBefore", mock.Anything, pair, mock.Anything).Return(domain.ExchangeRate{}, wantErr).Once()

	_, err := s.GetRate(context.Background(), pair, domain.RateQuery{Source: domain.SourceHistorical})

	require.ErrorIs(t, err, wantErr)
	require.ErrorContains(t, err, "historical rate USD/EUR")
}

func TestService_GetRate_NoHistoryConfigured(t *testing.T) {
	store, _ := newTestStore(t)
	s := NewService(store, nil, nil)

	_, err := s.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, domain.RateQuery{Source: domain.SourceHistorical})

	require.ErrorIs(t, err, domain.ErrNoFxRate)
}

func TestService_GetRate_FixedNeverFallsBack(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)
	asOf := rateDate

	_, err := s.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, domain.RateQuery{Source: domain.SourceFixed, AsOf: &asOf})

	require.ErrorIs(t, err, domain.ErrNoFxRate)
	mockHistory.AssertNotCalled(t, "GetOnOrBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Refresh_ReturnsExecID(t *testing.T) {
	store, _ := newTestStore(t)
	mockClient := new(MockRateClient)
	refresher := NewRefresher(store, mockClient, nil, nil, []domain.CurrencyCode{"USD"}, time.Second)
	s := NewService(store, nil, refresher)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.92", rateDate)}, nil).Once()

	execID, err := s.Refresh(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, execID)
	require.Len(t, s.Snapshot().Rates, 1)
}

func TestService_WarmUp(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)

	mockHistory.On("LatestAll", mock.Anything).Return([]domain.ExchangeRate{
		{From: "USD", To: "EUR", Value: dec("0.92"), Date: rateDate, UpdatedAt: refreshedAt},
		{From: "GBP", To: "EUR", Value: dec("1.15"), Date: rateDate, UpdatedAt: refreshedAt},
	}, nil).Once()

	n, err := s.WarmUp(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, n)
	r, err := s.GetRate(context.Background(), domain.RatePair{From: "EUR", To: "GBP"}, domain.RateQuery{})
	require.NoError(t, err)
	require.False(t, r.Stale)
}

func TestService_WarmUp_Error(t *testing.T) {
	store, _ := newTestStore(t)
	mockHistory := new(MockHistoryRepository)
	s := NewService(store, mockHistory, nil)

	mockHistory.On("LatestAll", mock.Anything).Return(nil, errors.New("db fail")).Once()

	_, err := s.WarmUp(context.Background())

	require.ErrorContains(t, err, "failed to load rate history")
}
