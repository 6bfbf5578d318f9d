// Package chat routes a uniform send request to the right provider adapter.
package chat

import (
	"context"
	"fmt"

	"traychat/attachment"
	"traychat/config"
	"traychat/model"
	"traychat/provider"
)

// Request carries everything one send needs. The core reads it and never
// mutates it; history and credentials stay caller-owned.
type Request struct {
	Model       model.Option
	Credentials model.Credentials
	History     []model.Message
	Draft       string
	Attachments []model.Attachment
}

// AdapterFactory builds an adapter for one provider with its API key.
type AdapterFactory func(p model.Provider, apiKey string) (model.Adapter, error)

// Dispatcher resolves the adapter for a request's selected model and performs
// exactly one send attempt. No retries, no backoff: the shell layer decides
// whether the user resends.
type Dispatcher struct {
	newAdapter AdapterFactory
}

// NewDispatcher creates a dispatcher backed by the real provider adapters.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		newAdapter: func(p model.Provider, apiKey string) (model.Adapter, error) {
			return provider.New(provider.Config{Type: p, APIKey: apiKey})
		},
	}
}

// NewDispatcherWithFactory creates a dispatcher with a custom adapter
// factory, mainly for tests.
func NewDispatcherWithFactory(factory AdapterFactory) *Dispatcher {
	return &Dispatcher{newAdapter: factory}
}

// Send composes the outgoing message from the draft and attachments, resolves
// the adapter by the selected model's provider tag, and returns the reply
// text or the adapter's error unchanged. The OpenRouter free tier is always
// dispatched without a credential, even when an OpenRouter key exists.
func (d *Dispatcher) Send(ctx context.Context, req Request) (string, error) {
	if !req.Model.Provider.Valid() {
		return "", fmt.Errorf("unknown provider %q for model %q", req.Model.Provider, req.Model.ID)
	}

	adapter, err := d.newAdapter(req.Model.Provider, req.Credentials.For(req.Model.Provider))
	if err != nil {
		return "", fmt.Errorf("resolving adapter for %s: %w", req.Model.Provider, err)
	}

	text := attachment.Compose(req.Draft, req.Attachments)
	images := attachment.EncodeImages(req.Attachments)

	if config.Debug {
		config.DebugLog.Printf("[Chat] Sending to %s model %s (%d history turns, %d images)",
			req.Model.Provider, req.Model.ID, len(req.History), len(images))
	}

	return adapter.SendMessage(ctx, req.Model.ID, req.History, text, images)
}
