package domain

import "strings"

// NormalizeTerm is the comparison key for term names. Model output spells
// the same term with varying case, inner whitespace (including newlines)
// and stray wrapping quotes or backticks, so those are folded:
//
//	"  Kubernetes\n Pod " -> "kubernetes pod"
//	"`kubectl`"           -> "kubectl"
//
// Punctuation inside the term (CI/CD, don't, well-known) and diacritics are
// kept.
func NormalizeTerm(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	for len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if first != last || !strings.ContainsRune("\"'`", rune(first)) {
			break
		}
		name = strings.TrimSpace(name[1 : len(name)-1])
	}
	return strings.ToLower(name)
}
