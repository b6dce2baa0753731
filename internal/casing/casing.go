// Package casing converts identifiers between naming conventions.
// Parameter names are normalized to snake_case before they are attached
// to the tree, and the case-conversion transformers reuse the same rules.
package casing

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	lowerToUpper     = regexp.MustCompile(`([a-z])([A-Z])`)
	upperToTitle     = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	numberToLetter   = regexp.MustCompile(`([0-9])([a-zA-Z])`)
	snakeCasePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	shortFlagPattern = regexp.MustCompile(`^-[a-zA-Z]$`)
)

// normalize splits a value on case and symbol boundaries and rejoins the
// words with sep.
func normalize(value, sep string) string {
	value = lowerToUpper.ReplaceAllString(value, "$1"+sep+"$2")
	value = upperToTitle.ReplaceAllString(value, "$1"+sep+"$2")
	value = numberToLetter.ReplaceAllString(value, "$1"+sep+"$2")
	value = nonAlphanumeric.ReplaceAllString(value, sep)
	if sep != "" {
		collapsed := regexp.MustCompile(regexp.QuoteMeta(sep) + "+")
		value = collapsed.ReplaceAllString(value, sep)
	}
	return strings.Trim(value, sep)
}

// Snake converts a value to snake_case.
func Snake(value string) string {
	return strings.ToLower(normalize(value, "_"))
}

// ScreamingSnake converts a value to SCREAMING_SNAKE_CASE.
func ScreamingSnake(value string) string {
	return strings.ToUpper(Snake(value))
}

// Kebab converts a value to kebab-case.
func Kebab(value string) string {
	return strings.ToLower(normalize(value, "-"))
}

// Pascal converts a value to PascalCase.
func Pascal(value string) string {
	words := strings.Split(normalize(value, " "), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// Camel converts a value to camelCase.
func Camel(value string) string {
	v := Pascal(value)
	if v == "" {
		return v
	}
	return strings.ToLower(v[:1]) + v[1:]
}

// Train converts a value to Train-Case.
func Train(value string) string {
	words := strings.Split(normalize(value, "-"), "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "-")
}

// Flat converts a value to flatcase.
func Flat(value string) string {
	return strings.ToLower(strings.ReplaceAll(normalize(value, " "), " ", ""))
}

// Dot converts a value to dot.case.
func Dot(value string) string {
	return strings.ToLower(normalize(value, "."))
}

// Title converts a value to Title Case.
func Title(value string) string {
	words := strings.Split(normalize(value, " "), " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// IsSnake reports whether a value already is valid snake_case.
func IsSnake(value string) bool {
	return snakeCasePattern.MatchString(value)
}

// IsShortFlag reports whether a value looks like a short CLI flag (-n).
func IsShortFlag(value string) bool {
	return shortFlagPattern.MatchString(value)
}

// ParamName derives the snake_case parameter name from a flag or raw
// name: "--api-key" becomes "api_key".
func ParamName(value string) string {
	if IsSnake(value) {
		return value
	}
	return Snake(strings.TrimLeft(value, "-"))
}
