package model

import "context"

// Adapter abstracts one provider backend behind a uniform contract.
//
// The interface lives in the model package (not provider) to avoid import
// cycles: adapter implementations import model, and the catalog and chat
// layers consume Adapter without importing provider internals.
//
// Credentials are bound at construction time (see provider.New); an Adapter
// instance is cheap and built fresh per call, so the core never caches keys.
type Adapter interface {
	// ListModels returns the models this provider currently offers.
	// Callers treat any error as "no models from this provider" — listing
	// failures never interrupt catalog aggregation.
	ListModels(ctx context.Context) ([]Option, error)

	// SendMessage sends one user turn with prior history and any inline
	// images, and returns the assistant's reply text.
	//
	// Transport failures and non-2xx statuses return an error. A 2xx
	// response whose body does not match the expected shape degrades to
	// the literal text "No response" with a nil error.
	SendMessage(ctx context.Context, modelID string, history []Message, text string, images []ImageAttachment) (string, error)
}

// NoResponse is the fallback text returned when a successful HTTP response
// cannot be parsed into reply content.
const NoResponse = "No response"
