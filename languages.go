package scribe

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/farcloser/scribe/internal/types"
)

// UnknownLanguage is the display name returned for language keys the registry does not know.
// It is a placeholder, not an error signal.
const UnknownLanguage = "?"

// Language is a language known by the analysis server.
type Language = types.Language

// LanguageSource lists the languages of a server.
type LanguageSource interface {
	ListLanguages(ctx context.Context) ([]types.Language, error)
}

// Languages maps language keys to their display names.
// It is populated once and then only read; it does no locking.
type Languages struct {
	byKey map[string]Language
}

// NewLanguages returns an empty registry.
func NewLanguages() *Languages {
	return &Languages{byKey: map[string]Language{}}
}

// LoadLanguages builds a registry from the languages reported by source.
// If a key is listed more than once, the last entry wins.
func LoadLanguages(ctx context.Context, source LanguageSource) (*Languages, error) {
	list, err := source.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}

	mapping := make(map[string]Language, len(list))
	for _, lang := range list {
		mapping[lang.Key] = lang
	}

	registry := NewLanguages()
	registry.Load(mapping)

	return registry, nil
}

// Load replaces the whole mapping with a copy of mapping.
func (l *Languages) Load(mapping map[string]Language) {
	l.byKey = maps.Clone(mapping)
}

// Resolve returns the display name of key, or UnknownLanguage.
func (l *Languages) Resolve(key string) string {
	if l == nil || len(l.byKey) == 0 {
		return UnknownLanguage
	}

	if lang, ok := l.byKey[key]; ok {
		return lang.Name
	}

	return UnknownLanguage
}

// All returns the registered languages ordered by key.
func (l *Languages) All() []Language {
	if l == nil {
		return nil
	}

	all := make([]Language, 0, len(l.byKey))
	for _, lang := range l.byKey {
		all = append(all, lang)
	}

	slices.SortFunc(all, func(a, b Language) int {
		return strings.Compare(a.Key, b.Key)
	})

	return all
}

// Len returns the number of registered languages.
func (l *Languages) Len() int {
	if l == nil {
		return 0
	}

	return len(l.byKey)
}
