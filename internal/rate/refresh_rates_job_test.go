package rate

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"fxdisplay/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetExchangeRates(ctx context.Context, base domain.CurrencyCode) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, base)
	rates, _ := args.Get(0).([]domain.ExchangeRate)
	return rates, args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) SaveBatch(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetOnOrBefore(ctx context.Context, pair domain.RatePair, asOf time.Time) (domain.ExchangeRate, error) {
	args := m.Called(ctx, pair, asOf)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

func (m *MockHistoryRepository) LatestAll(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).([]domain.ExchangeRate)
	return rates, args.Error(1)
}

func supportedOnly(codes ...domain.CurrencyCode) func(domain.CurrencyCode) bool {
	set := make(map[domain.CurrencyCode]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(c domain.CurrencyCode) bool {
		_, ok := set[c]
		return ok
	}
}

// --- processBase ---

func TestProcessBase_ErrorFromClient(t *testing.T) {
	mockClient := new(MockRateClient)
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return(nil, errors.New("timeout")).Once()

	res := processBase(context.Background(), 1, "USD", mockClient, time.Second)

	require.Error(t, res.Err)
	require.ErrorContains(t, res.Err, "base USD")
	require.Empty(t, res.Rates)
	mockClient.AssertExpectations(t)
}

func TestProcessBase_AppliesPerRequestTimeout(t *testing.T) {
	mockClient := new(MockRateClient)
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			require.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		}).
		Return([]domain.ExchangeRate{}, nil).Once()

	res := processBase(context.Background(), 1, "USD", mockClient, 50*time.Millisecond)

	require.NoError(t, res.Err)
	mockClient.AssertExpectations(t)
}

// --- runWorker ---

func TestRunWorker_ProcessesQueue(t *testing.T) {
	mockClient := new(MockRateClient)
	queue := make(chan domain.CurrencyCode, 2)
	queue <- "USD"
	queue <- "EUR"
	close(queue)
	results := make(chan baseResult, 2)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.92", rateDate)}, nil).Once()
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("EUR")).Return([]domain.ExchangeRate{fetched("EUR", "GBP", "0.86", rateDate)}, nil).Once()

	done := make(chan struct{})
	go func() {
		runWorker(context.Background(), 7, queue, mockClient, time.Second, results)
		close(done)
	}()
	<-done
	close(results)

	var bases []string
	for res := range results {
		require.NoError(t, res.Err)
		require.Len(t, res.Rates, 1)
		bases = append(bases, string(res.Base))
	}
	sort.Strings(bases)
	require.Equal(t, []string{"EUR", "USD"}, bases)
	mockClient.AssertExpectations(t)
}

func TestRunWorker_StopsOnCanceledContext(t *testing.T) {
	mockClient := new(MockRateClient)
	queue := make(chan domain.CurrencyCode)
	results := make(chan baseResult, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runWorker(ctx, 1, queue, mockClient, time.Second, results)

	mockClient.AssertNotCalled(t, "GetExchangeRates", mock.Anything, mock.Anything)
}

// --- processInParallel ---

func TestProcessInParallel_FetchesEveryBase(t *testing.T) {
	mockClient := new(MockRateClient)
	bases := []domain.CurrencyCode{"USD", "EUR", "GBP", "RUB", "JPY", "KWD", "BTC"}
	for _, b := range bases {
		mockClient.On("GetExchangeRates", mock.Anything, b).Return([]domain.ExchangeRate{}, nil).Once()
	}

	results := processInParallel(context.Background(), mockClient, bases, time.Second)

	require.Len(t, results, len(bases))
	mockClient.AssertExpectations(t)
}

// --- collectRates ---

func TestCollectRates_SkipsInvalidAndUnsupported(t *testing.T) {
	results := []baseResult{
		{Base: "USD", Rates: []domain.ExchangeRate{
			fetched("USD", "EUR", "0.92", rateDate),
			fetched("USD", "XXX", "3", rateDate),
			fetched("USD", "GBP", "0", rateDate),
			fetched("USD", "USD", "1", rateDate),
		}},
		{Base: "EUR", Err: errors.New("base EUR: boom")},
	}

	rates, failed := collectRates(results, supportedOnly("USD", "EUR", "GBP"))

	require.Len(t, rates, 1)
	require.Equal(t, "USD-EUR", rates[0].Pair().Key())
	require.Len(t, failed, 1)
}

// --- Refresh ---

func TestRefresher_Refresh_Success(t *testing.T) {
	store, _ := newTestStore(t)
	mockClient := new(MockRateClient)
	mockHistory := new(MockHistoryRepository)
	r := NewRefresher(store, mockClient, mockHistory, supportedOnly("USD", "EUR", "GBP"), []domain.CurrencyCode{"USD", "GBP"}, time.Second)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.92", rateDate)}, nil).Once()
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("GBP")).Return([]domain.ExchangeRate{fetched("GBP", "EUR", "1.15", rateDate)}, nil).Once()
	mockHistory.On("SaveBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		saved := args.Get(1).([]domain.ExchangeRate)
		require.Len(t, saved, 2)
	}).Once()

	err := r.Refresh(context.Background(), "exec-1")

	require.NoError(t, err)
	snap := store.Snapshot()
	require.Equal(t, domain.StateReady, snap.State)
	require.Len(t, snap.Rates, 2)
	mockClient.AssertExpectations(t)
	mockHistory.AssertExpectations(t)
}

func TestRefresher_Refresh_AllBasesFail_FailOpen(t *testing.T) {
	store, _ := loadedStore(t, fetched("USD", "EUR", "0.92", rateDate))
	mockClient := new(MockRateClient)
	mockHistory := new(MockHistoryRepository)
	r := NewRefresher(store, mockClient, mockHistory, nil, []domain.CurrencyCode{"USD"}, time.Second)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return(nil, errors.New("503")).Once()

	err := r.Refresh(context.Background(), "exec-2")

	require.ErrorIs(t, err, ErrRefreshFailed)
	require.ErrorContains(t, err, "503")
	snap := store.Snapshot()
	require.Equal(t, domain.StateErrored, snap.State)
	require.False(t, snap.Loading)
	require.NotEmpty(t, snap.Error)

	rate, lookupErr := store.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, backend)
	require.NoError(t, lookupErr)
	require.Equal(t, "0.92", rate.Value.String())
	mockHistory.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestRefresher_Refresh_PartialFailureKeepsOtherBases(t *testing.T) {
	store, _ := loadedStore(t, fetched("GBP", "EUR", "1.10", rateDate))
	mockClient := new(MockRateClient)
	r := NewRefresher(store, mockClient, nil, nil, []domain.CurrencyCode{"USD", "GBP"}, time.Second)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.92", rateDate)}, nil).Once()
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("GBP")).Return(nil, errors.New("timeout")).Once()

	require.NoError(t, r.Refresh(context.Background(), "exec-3"))

	gbp, err := store.GetRate(context.Background(), domain.RatePair{From: "GBP", To: "EUR"}, backend)
	require.NoError(t, err)
	require.Equal(t, "1.1", gbp.Value.String())
	usd, err := store.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, backend)
	require.NoError(t, err)
	require.Equal(t, "0.92", usd.Value.String())
	require.Equal(t, domain.StateReady, store.Snapshot().State)
}

func TestRefresher_Refresh_HistoryErrorIsNotFatal(t *testing.T) {
	store, _ := newTestStore(t)
	mockClient := new(MockRateClient)
	mockHistory := new(MockHistoryRepository)
	r := NewRefresher(store, mockClient, mockHistory, nil, []domain.CurrencyCode{"USD"}, time.Second)

	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.92", rateDate)}, nil).Once()
	mockHistory.On("SaveBatch", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	require.NoError(t, r.Refresh(context.Background(), "exec-4"))
	require.Equal(t, domain.StateReady, store.Snapshot().State)
	mockHistory.AssertExpectations(t)
}

func TestRefresher_Refresh_NoBases(t *testing.T) {
	store, _ := newTestStore(t)
	mockClient := new(MockRateClient)
	r := NewRefresher(store, mockClient, nil, nil, nil, 0)

	require.NoError(t, r.Refresh(context.Background(), "exec-5"))
	require.Equal(t, domain.StateIdle, store.Snapshot().State)
	require.Equal(t, DefaultRequestTimeout, r.requestTimeout)
	mockClient.AssertNotCalled(t, "GetExchangeRates", mock.Anything, mock.Anything)
}

func TestRefresher_Refresh_OutdatedResultDiscarded(t *testing.T) {
	store, _ := newTestStore(t)
	mockClient := new(MockRateClient)
	r := NewRefresher(store, mockClient, nil, nil, []domain.CurrencyCode{"USD"}, time.Second)

	// a newer refresh lands while this one is still fetching
	mockClient.On("GetExchangeRates", mock.Anything, domain.CurrencyCode("USD")).
		Run(func(mock.Arguments) {
			token := store.BeginRefresh()
			require.True(t, store.CompleteRefresh(token, []domain.ExchangeRate{fetched("USD", "EUR", "0.95", rateDate)}))
		}).
		Return([]domain.ExchangeRate{fetched("USD", "EUR", "0.80", rateDate)}, nil).Once()

	require.NoError(t, r.Refresh(context.Background(), "exec-6"))

	got, err := store.GetRate(context.Background(), domain.RatePair{From: "USD", To: "EUR"}, backend)
	require.NoError(t, err)
	require.Equal(t, "0.95", got.Value.String())
}
