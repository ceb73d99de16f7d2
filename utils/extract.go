package utils

import (
	"regexp"
	"strings"
	"sync"
)

var patternCache sync.Map

// compile caches compiled patterns. A malformed pattern is a programming
// error and panics.
func compile(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	patternCache.Store(pattern, re)
	return re
}

// Search returns the trimmed capture group of the first case-insensitive
// match, with '.' also matching newlines. Nil means no match.
func Search(pattern, text string, group int) *string {
	re := compile(`(?is)` + pattern)

	loc := re.FindStringSubmatchIndex(text)
	if loc == nil || 2*group+1 >= len(loc) || loc[2*group] < 0 {
		return nil
	}

	value := strings.TrimSpace(text[loc[2*group]:loc[2*group+1]])
	return &value
}

// SearchAll returns every case-insensitive match in document order.
// Each element holds the full match followed by its groups.
func SearchAll(pattern, text string) [][]string {
	return compile(`(?i)`+pattern).FindAllStringSubmatch(text, -1)
}
