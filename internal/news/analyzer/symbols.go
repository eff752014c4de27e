package analyzer

import (
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of word characters. Vietnamese letters count as word
// characters so "KHOÁN" is never split into a bogus "KHO" token.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// nonSymbols are three-letter upper-case tokens that look like tickers but are currencies,
// acronyms or unaccented Vietnamese words.
var nonSymbols = map[string]struct{}{
	"USD": {}, "VND": {}, "CEO": {}, "CFO": {}, "GDP": {}, "CPI": {}, "API": {}, "URL": {},
	"CSS": {}, "PDF": {}, "IMG": {}, "SRC": {}, "COM": {}, "JPG": {}, "PNG": {}, "GIF": {},
	"HTM": {}, "VAI": {}, "CHO": {}, "NAY": {}, "VOI": {}, "CUA": {}, "LAM": {}, "THI": {},
	"VAN": {}, "HAY": {}, "MOT": {}, "HAI": {}, "BAY": {}, "NAM": {}, "SAU": {}, "BON": {},
	"TRI": {}, "GIA": {}, "NOP": {}, "LON": {}, "VIX": {}, "SHS": {}, "TOP": {}, "NEW": {},
	"OLD": {}, "ETF": {}, "IPO": {}, "CHN": {}, "GAN": {}, "NHA": {}, "VAY": {}, "TIN": {},
	"FED": {},
}

// ExtractSymbols returns the distinct ticker candidates found in text, in first-seen order.
// A candidate is a word of exactly three A-Z letters after upper-casing that is not a known
// non-ticker.
func ExtractSymbols(text string) []string {
	symbols := []string{}
	if text == "" {
		return symbols
	}

	seen := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(strings.ToUpper(text), -1) {
		if !isTickerShape(word) {
			continue
		}
		if _, skip := nonSymbols[word]; skip {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		symbols = append(symbols, word)
	}
	return symbols
}

// IsNonSymbol reports whether s is on the exclusion list.
func IsNonSymbol(s string) bool {
	_, ok := nonSymbols[strings.ToUpper(s)]
	return ok
}

func isTickerShape(word string) bool {
	if len(word) != 3 {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return false
		}
	}
	return true
}
