package model

import (
	"fmt"
	"strings"
)

// Option identifies a selectable model in the catalog.
//
// Identity is Provider + ID. Options are rebuilt wholesale on every catalog
// refresh and never mutated.
type Option struct {
	Provider    Provider
	ID          string // provider-defined model identifier, opaque
	DisplayName string // human label, falls back to ID upstream
}

// Label returns the string the picker sorts and displays,
// e.g. "ChatGPT - gpt-4o" or "OpenRouter Free - qwen3-coder:free".
func (o Option) Label() string {
	return o.Provider.Title() + " - " + o.DisplayName
}

// Key returns the composite identity of the option.
func (o Option) Key() string {
	return string(o.Provider) + "/" + o.ID
}

// ParseOptionRef parses a "provider/modelID" reference as typed on the
// command line. Model IDs may themselves contain slashes (OpenRouter), so
// only the first separator splits.
func ParseOptionRef(ref string) (Option, error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Option{}, fmt.Errorf("invalid model reference %q: want provider/model-id", ref)
	}

	p := Provider(parts[0])
	if !p.Valid() {
		return Option{}, fmt.Errorf("unknown provider %q", parts[0])
	}

	return Option{Provider: p, ID: parts[1], DisplayName: parts[1]}, nil
}
