package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fxdisplay/internal/adapters"
	"fxdisplay/internal/domain"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const DefaultRequestTimeout = 10 * time.Second

var ErrRefreshFailed = errors.New("rate refresh failed")

type baseResult struct {
	Base  domain.CurrencyCode
	Rates []domain.ExchangeRate
	Err   error
}

type Refresher struct {
	store          *Store
	client         adapters.RateClient
	history        adapters.RateHistoryRepository
	supported      func(domain.CurrencyCode) bool
	bases          []domain.CurrencyCode
	requestTimeout time.Duration
}

// Refresh fetches the latest rates for every configured base and publishes
// them to the store. A refresh that fetches nothing leaves the cached rates
// in place and marks the store as errored.
func (r *Refresher) Refresh(ctx context.Context, execID string) error {
	if len(r.bases) == 0 {
		logrus.Infof("No base currencies configured, nothing to refresh; execID: %s", execID)
		return nil
	}

	// STEP 1: take a token, newer refreshes win over this one
	token := r.store.BeginRefresh()
	logrus.Infof("Refreshing rates for %d bases, token %d; execID: %s", len(r.bases), token, execID)

	// STEP 2: fetch every base in parallel
	results := processInParallel(ctx, r.client, r.bases, r.requestTimeout)

	// STEP 3: keep only valid rates for supported currencies
	rates, failed := collectRates(results, r.supported)
	if ctxErr := ctx.Err(); ctxErr != nil && len(results) < len(r.bases) {
		failed = append(failed, ctxErr)
	}
	if len(rates) == 0 {
		err := fmt.Errorf("%w: no rates fetched for %d bases", ErrRefreshFailed, len(r.bases))
		if len(failed) > 0 {
			err = fmt.Errorf("%w: %w", err, errors.Join(failed...))
		}
		if !r.store.FailRefresh(token, err) {
			logrus.Warnf("Discarding failed refresh with outdated token %d; execID: %s", token, execID)
		}
		return err
	}
	if len(failed) > 0 {
		logrus.Warnf("%d bases failed and keep their cached rates; execID: %s", len(failed), execID)
	}

	// STEP 4: publish, unless a newer refresh already landed
	if !r.store.CompleteRefresh(token, rates) {
		logrus.Warnf("Discarding refresh result with outdated token %d; execID: %s", token, execID)
		return nil
	}

	// STEP 5: history is best effort, live rates are already served
	if r.history != nil {
		if err := r.history.SaveBatch(ctx, rates); err != nil {
			logrus.WithError(err).WithField("execID", execID).Warn("failed to save rate history")
		}
	}

	logrus.Infof("%d rates were refreshed; execID %s", len(rates), execID)
	return nil
}

// processInParallel runs workers, which fetch rates from the external API
func processInParallel(ctx context.Context, client adapters.RateClient, bases []domain.CurrencyCode, timeout time.Duration) []baseResult {
	workQueue := make(chan domain.CurrencyCode, len(bases))
	for _, base := range bases {
		workQueue <- base
	}
	close(workQueue)

	resultsCh := make(chan baseResult, len(bases))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runWorker(ctx, workerID, workQueue, client, timeout, resultsCh)
		}(i)
	}

	wg.Wait()
	close(resultsCh)

	results := make([]baseResult, 0, len(bases))
	for res := range resultsCh {
		results = append(results, res)
	}
	return results
}

func runWorker(ctx context.Context, workerID int, workQueue <-chan domain.CurrencyCode, client adapters.RateClient, timeout time.Duration, resultsCh chan<- baseResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case base, ok := <-workQueue:
			if !ok {
				return
			}
			resultsCh <- processBase(ctx, workerID, base, client, timeout)
		}
	}
}

// processBase fetches one base. The timeout bounds this call only, a slow base
// is picked up again by the next refresh.
func processBase(ctx context.Context, workerID int, base domain.CurrencyCode, client adapters.RateClient, timeout time.Duration) baseResult {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rates, err := client.GetExchangeRates(reqCtx, base)
	if err != nil {
		logrus.Warnf("Base '%s' wasn't processed by Worker %d as external api call returned error: %s", base, workerID, err)
		return baseResult{Base: base, Err: fmt.Errorf("base %s: %w", base, err)}
	}
	return baseResult{Base: base, Rates: rates}
}

func collectRates(results []baseResult, supported func(domain.CurrencyCode) bool) ([]domain.ExchangeRate, []error) {
	var rates []domain.ExchangeRate
	var failed []error
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Err)
			continue
		}
		for _, r := range res.Rates {
			if err := r.Validate(); err != nil {
				logrus.Warnf("Skipping rate from base '%s': %s", res.Base, err)
				continue
			}
			if supported != nil && (!supported(r.From) || !supported(r.To)) {
				continue
			}
			rates = append(rates, r)
		}
	}
	return rates, failed
}

func NewRefresher(store *Store, client adapters.RateClient, history adapters.RateHistoryRepository, supported func(domain.CurrencyCode) bool, bases []domain.CurrencyCode, requestTimeout time.Duration) *Refresher {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Refresher{
		store:          store,
		client:         client,
		history:        history,
		supported:      supported,
		bases:          bases,
		requestTimeout: requestTimeout,
	}
}
