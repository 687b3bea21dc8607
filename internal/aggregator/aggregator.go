package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dharmasatrya/toursearch/internal/models"
	"github.com/dharmasatrya/toursearch/internal/providers"
	"github.com/dharmasatrya/toursearch/internal/ratelimit"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.KeyedLimiter
	Logger      zerolog.Logger
}

type Aggregator struct {
	providers []providers.Provider
	config    Config
}

type Result struct {
	Tours              []models.Tour
	ProvidersQueried   int
	ProvidersSucceeded int
	ProvidersFailed    int
	FailedProviders    []string
}

func NewAggregator(providerList []providers.Provider, config Config) *Aggregator {
	return &Aggregator{
		providers: providerList,
		config:    config,
	}
}

// Catalog queries every provider concurrently and merges the active tours
// in provider registration order. When two providers return the same tour
// ID the earlier provider wins. Provider failures are reported in the
// result, never returned as an error.
func (a *Aggregator) Catalog(ctx context.Context) (*Result, error) {
	searchCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	type providerResult struct {
		tours []models.Tour
		err   error
	}

	results := make([]providerResult, len(a.providers))
	var wg sync.WaitGroup

	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, provider providers.Provider) {
			defer wg.Done()

			if a.config.RateLimiter != nil {
				if err := a.config.RateLimiter.Wait(searchCtx, provider.Name()); err != nil {
					results[i] = providerResult{err: err}
					return
				}
			}

			tours, err := a.fetchWithRetry(searchCtx, provider)
			results[i] = providerResult{tours: tours, err: err}
		}(i, p)
	}
	wg.Wait()

	result := &Result{
		Tours:            make([]models.Tour, 0),
		ProvidersQueried: len(a.providers),
	}
	seen := make(map[string]bool)

	for i, pr := range results {
		name := a.providers[i].Name()
		if pr.err != nil {
			a.config.Logger.Warn().Str("provider", name).Err(pr.err).Msg("provider failed")
			result.ProvidersFailed++
			result.FailedProviders = append(result.FailedProviders, name)
			continue
		}

		result.ProvidersSucceeded++
		for _, t := range pr.tours {
			if !t.IsActive || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			result.Tours = append(result.Tours, t)
		}
	}

	return result, nil
}

func (a *Aggregator) fetchWithRetry(ctx context.Context, provider providers.Provider) ([]models.Tour, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(a.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(a.config.RetryDelays) {
				delayIdx = len(a.config.RetryDelays) - 1
			}
			delay := a.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		tours, err := provider.Tours(ctx)
		if err == nil {
			return tours, nil
		}

		lastErr = providers.NewProviderError(provider.Name(), err)
		a.config.Logger.Debug().
			Str("provider", provider.Name()).
			Int("attempt", attempt+1).
			Err(err).
			Msg("provider attempt failed")
	}

	return nil, lastErr
}
