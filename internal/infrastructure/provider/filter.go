package provider

import (
	"strings"
	"unicode"
)

// Filter is the content policy an adapter applies before returning items.
// Each adapter documents which of these checks it honors.
type Filter struct {
	// AllowedSources is a lower-cased allow-list of source names or
	// domains; empty allows every source.
	AllowedSources []string
	// RequireASCIITitle drops titles without a single ASCII letter.
	RequireASCIITitle bool
	// MinLatinRatio drops titles whose letters are mostly non-ASCII;
	// zero disables the heuristic.
	MinLatinRatio float64
	// Languages is the set of accepted provider language labels.
	Languages []string
}

func (f Filter) allowSource(source string) bool {
	if len(f.AllowedSources) == 0 {
		return true
	}
	source = strings.ToLower(strings.TrimSpace(source))
	for _, allowed := range f.AllowedSources {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if source == allowed || strings.HasSuffix(source, "."+allowed) {
			return true
		}
	}
	return false
}

func (f Filter) allowTitle(title string) bool {
	if f.RequireASCIITitle && !hasASCIILetter(title) {
		return false
	}
	if f.MinLatinRatio > 0 && latinRatio(title) < f.MinLatinRatio {
		return false
	}
	return true
}

func (f Filter) allowLanguage(language string) bool {
	if len(f.Languages) == 0 || language == "" {
		return true
	}
	for _, accepted := range f.Languages {
		if strings.EqualFold(accepted, language) {
			return true
		}
	}
	return false
}

func hasASCIILetter(s string) bool {
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func latinRatio(s string) float64 {
	var letters, ascii int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r < unicode.MaxASCII {
			ascii++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(ascii) / float64(letters)
}
