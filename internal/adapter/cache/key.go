// Package cache stores term expansions so repeated "learn more" requests for
// the same term in the same context skip the model call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// Key derives a stable cache key from the inputs that shape an expansion.
// Term and seed word are normalized; definition is kept verbatim since a
// different definition can change the answer.
func Key(term, definition, seedWord, language string) string {
	h := sha256.New()
	for _, part := range []string{
		domain.NormalizeTerm(term),
		strings.TrimSpace(definition),
		domain.NormalizeTerm(seedWord),
		strings.ToLower(strings.TrimSpace(language)),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "expand:" + hex.EncodeToString(h.Sum(nil))
}
