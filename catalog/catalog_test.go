package catalog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"traychat/model"
	"traychat/provider/testutil"
)

func TestRefreshQueriesConfiguredProvidersOnly(t *testing.T) {
	var mu sync.Mutex
	queried := map[model.Provider]bool{}

	agg := NewAggregatorWithFactory(func(p model.Provider, apiKey string) (model.Adapter, error) {
		mu.Lock()
		queried[p] = true
		mu.Unlock()

		mock := testutil.NewMockAdapter()
		mock.ListModelsFunc = testutil.FixedModels(
			model.Option{Provider: p, ID: "m1", DisplayName: "m1"},
		)
		return mock, nil
	})

	creds := model.Credentials{Anthropic: "sk-ant-test"} // only one keyed provider
	options := agg.Refresh(context.Background(), creds)

	// Anthropic plus the always-available free tier.
	want := map[model.Provider]bool{
		model.ProviderAnthropic:      true,
		model.ProviderOpenRouterFree: true,
	}
	if !reflect.DeepEqual(queried, want) {
		t.Errorf("queried %v, expected %v", queried, want)
	}
	if len(options) != 2 {
		t.Errorf("expected 2 options, got %d", len(options))
	}
}

func TestRefreshPartialFailure(t *testing.T) {
	agg := NewAggregatorWithFactory(func(p model.Provider, apiKey string) (model.Adapter, error) {
		mock := testutil.NewMockAdapter()
		switch p {
		case model.ProviderAnthropic:
			mock.ListModelsFunc = testutil.FixedModels(
				model.Option{Provider: p, ID: "claude-sonnet-4-5", DisplayName: "Claude Sonnet 4.5"},
			)
		case model.ProviderOpenRouterFree:
			mock.ListModelsFunc = testutil.FixedModels(
				model.Option{Provider: p, ID: "llama:free", DisplayName: "Llama (free)"},
			)
		default:
			mock.ListModelsFunc = func(context.Context) ([]model.Option, error) {
				return nil, errors.New("connection refused")
			}
		}
		return mock, nil
	})

	creds := model.Credentials{
		OpenAI:     "sk-test",
		Anthropic:  "sk-ant-test",
		Gemini:     "g-key",
		OpenRouter: "or-key",
	}
	options := agg.Refresh(context.Background(), creds)

	if len(options) != 2 {
		t.Fatalf("failing providers must contribute nothing, got %d options: %v", len(options), options)
	}
	for _, o := range options {
		if o.Provider != model.ProviderAnthropic && o.Provider != model.ProviderOpenRouterFree {
			t.Errorf("unexpected provider %q in results", o.Provider)
		}
	}
}

func TestRefreshFactoryFailure(t *testing.T) {
	agg := NewAggregatorWithFactory(func(p model.Provider, apiKey string) (model.Adapter, error) {
		return nil, errors.New("bad key")
	})

	options := agg.Refresh(context.Background(), model.Credentials{OpenAI: "sk-test"})
	if len(options) != 0 {
		t.Errorf("expected empty catalog, got %v", options)
	}
}

func TestSortOptions(t *testing.T) {
	options := []model.Option{
		{Provider: model.ProviderGemini, ID: "g", DisplayName: "zeta"},
		{Provider: model.ProviderOpenAI, ID: "a", DisplayName: "alpha"},
		{Provider: model.ProviderOpenAI, ID: "b", DisplayName: "Beta"},
	}

	SortOptions(options)

	// Labels sort case-insensitively: "ChatGPT - alpha", "ChatGPT - Beta",
	// "Gemini - zeta".
	wantIDs := []string{"a", "b", "g"}
	for i, want := range wantIDs {
		if options[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, options[i].ID)
		}
	}
}

func TestRefreshOrderIsDeterministic(t *testing.T) {
	agg := NewAggregatorWithFactory(func(p model.Provider, apiKey string) (model.Adapter, error) {
		mock := testutil.NewMockAdapter()
		mock.ListModelsFunc = testutil.FixedModels(
			model.Option{Provider: p, ID: string(p) + "-1", DisplayName: string(p) + "-1"},
			model.Option{Provider: p, ID: string(p) + "-2", DisplayName: string(p) + "-2"},
		)
		return mock, nil
	})

	creds := model.Credentials{
		OpenAI:     "sk-test",
		Anthropic:  "sk-ant-test",
		Gemini:     "g-key",
		OpenRouter: "or-key",
	}

	first := agg.Refresh(context.Background(), creds)
	for i := 0; i < 10; i++ {
		if got := agg.Refresh(context.Background(), creds); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different order:\n%v\nvs\n%v", i, got, first)
		}
	}
}

func TestSearch(t *testing.T) {
	options := []model.Option{
		{Provider: model.ProviderOpenAI, ID: "gpt-4o", DisplayName: "gpt-4o"},
		{Provider: model.ProviderAnthropic, ID: "claude-sonnet-4-5", DisplayName: "Claude Sonnet 4.5"},
		{Provider: model.ProviderGemini, ID: "gemini-2.5-pro", DisplayName: "Gemini 2.5 Pro"},
	}

	t.Run("empty query returns everything", func(t *testing.T) {
		if got := Search(options, ""); len(got) != len(options) {
			t.Errorf("expected %d options, got %d", len(options), len(got))
		}
	})

	t.Run("matches label text", func(t *testing.T) {
		got := Search(options, "sonnet")
		if len(got) != 1 || got[0].ID != "claude-sonnet-4-5" {
			t.Errorf("expected the sonnet entry, got %v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Search(options, "zzzzzz"); len(got) != 0 {
			t.Errorf("expected no results, got %v", got)
		}
	})
}
