// Package catalog merges the model lists of every configured provider into
// the single sorted catalog the picker shows.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"traychat/config"
	"traychat/model"
	"traychat/provider"
)

// AdapterFactory builds an adapter for one provider with its API key.
// Swappable in tests; the default defers to the provider package.
type AdapterFactory func(p model.Provider, apiKey string) (model.Adapter, error)

// Aggregator fans "list models" out across providers and merges the results.
type Aggregator struct {
	newAdapter AdapterFactory
}

// NewAggregator creates an aggregator backed by the real provider adapters.
func NewAggregator() *Aggregator {
	return &Aggregator{
		newAdapter: func(p model.Provider, apiKey string) (model.Adapter, error) {
			return provider.New(provider.Config{Type: p, APIKey: apiKey})
		},
	}
}

// NewAggregatorWithFactory creates an aggregator with a custom adapter
// factory, mainly for tests.
func NewAggregatorWithFactory(factory AdapterFactory) *Aggregator {
	return &Aggregator{newAdapter: factory}
}

// Refresh queries every provider with a configured credential concurrently
// (OpenRouter Free needs none and is always queried), waits for all of them,
// and returns the merged catalog sorted case-insensitively by label.
//
// Individual provider failures are swallowed: a dead provider or bad key
// contributes an empty slice and never blocks or taints the others. Partial
// results are the expected steady state.
func (a *Aggregator) Refresh(ctx context.Context, creds model.Credentials) []model.Option {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		options []model.Option
	)

	for _, p := range model.Providers() {
		if !creds.Configured(p) {
			continue
		}

		wg.Add(1)
		go func(p model.Provider) {
			defer wg.Done()

			found := a.listProvider(ctx, p, creds.For(p))

			mu.Lock()
			options = append(options, found...)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	SortOptions(options)
	return options
}

// listProvider fetches one provider's models, converting any failure into an
// empty result.
func (a *Aggregator) listProvider(ctx context.Context, p model.Provider, apiKey string) []model.Option {
	adapter, err := a.newAdapter(p, apiKey)
	if err != nil {
		if config.Debug {
			config.DebugLog.Printf("[Catalog] Skipping provider %s: %v", p, err)
		}
		return nil
	}

	options, err := adapter.ListModels(ctx)
	if err != nil {
		if config.Debug {
			config.DebugLog.Printf("[Catalog] Provider %s listing failed: %v", p, err)
		}
		return nil
	}

	if config.Debug {
		config.DebugLog.Printf("[Catalog] Provider %s: %d models", p, len(options))
	}
	return options
}

// SortOptions orders a catalog case-insensitively by its display labels, so
// the final order depends only on content, never on which provider answered
// first.
func SortOptions(options []model.Option) {
	sort.SliceStable(options, func(i, j int) bool {
		return strings.ToLower(options[i].Label()) < strings.ToLower(options[j].Label())
	})
}
