// Package bits parses digit streams character by character. Every character
// becomes a Digit that is either a valid decimal digit or explicitly invalid.
package bits

import (
	"math"
	"strconv"
)

// Digit is the parse result of one character of a digit stream.
type Digit struct {
	r     rune
	value int
	valid bool
}

// Parse the given character. Only the ASCII decimal digits are valid.
func Parse(r rune) Digit {
	if r < '0' || r > '9' {
		return Digit{r: r}
	}
	return Digit{r: r, value: int(r - '0'), valid: true}
}

// Valid indicates if the character is a decimal digit.
func (d Digit) Valid() bool {
	return d.valid
}

// Value of the digit, 0 if invalid.
func (d Digit) Value() int {
	return d.value
}

// Float returns the value of the digit, or NaN if the digit is invalid.
func (d Digit) Float() float64 {
	if !d.valid {
		return math.NaN()
	}
	return float64(d.value)
}

// Rune is the original character.
func (d Digit) Rune() rune {
	return d.r
}

func (d Digit) String() string {
	return string(d.r)
}

// GoString shows the parse result in test failures.
func (d Digit) GoString() string {
	if d.valid {
		return "bits.Digit(" + strconv.Itoa(d.value) + ")"
	}
	return "bits.Digit(invalid " + strconv.QuoteRune(d.r) + ")"
}

// Stream is a parsed digit stream.
type Stream []Digit

// ParseStream parses every character of s.
func ParseStream(s string) Stream {
	result := make(Stream, 0, len(s))
	for _, r := range s {
		result = append(result, Parse(r))
	}
	return result
}

// At returns the digit at index i. ok is false if i is out of range.
func (s Stream) At(i int) (d Digit, ok bool) {
	if i < 0 || i >= len(s) {
		return Digit{}, false
	}
	return s[i], true
}

// FirstInvalid returns the index of the first invalid digit, or -1.
func (s Stream) FirstInvalid() int {
	for i, d := range s {
		if !d.valid {
			return i
		}
	}
	return -1
}

func (s Stream) String() string {
	result := make([]rune, len(s))
	for i, d := range s {
		result[i] = d.r
	}
	return string(result)
}
