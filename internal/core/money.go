// Package core provides the transaction model and the entry-field parsing.
//
// This file contains the parsing of the combined "price name" input and the
// leading-number conversion it relies on.
package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest decimal literal at the start of a string,
// the same prefix a lenient float parser would consume.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseEntry splits the combined entry field into its leading price token
// and the remaining label.
//
// The split happens at the first space character. The token before it is
// parsed with ParseLeadingFloat; the label is everything after the space.
// When there is no space the whole value is the token and the label is empty.
//
// Examples:
//
//	ParseEntry("20000 mobile") -> 20000, "mobile"
//	ParseEntry("-200")         -> -200, ""
//	ParseEntry("abc food")     -> nil, "food"
func ParseEntry(raw string) (*float64, string) {
	token, label, found := strings.Cut(raw, " ")
	if !found {
		label = ""
	}
	return ParseLeadingFloat(token), label
}

// ParseLeadingFloat parses the numeric prefix of s after skipping leading
// whitespace, ignoring any trailing garbage ("12abc" -> 12). It returns nil
// when there is no numeric prefix or the value is not finite, which is how a
// non-numeric price travels over JSON (as null).
func ParseLeadingFloat(s string) *float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	m := leadingNumber.FindString(s)
	if m == "" {
		return nil
	}
	if strings.HasSuffix(m, "Infinity") {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Overflowing exponents ("1e999") come back as ±Inf with a range error.
		return nil
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
