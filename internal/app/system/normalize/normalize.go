// internal/app/system/normalize/normalize.go

// Package normalize centralizes input normalization so stores and handlers
// agree on canonical forms (emails lowercased, names trimmed, enums folded
// to lowercase). Keeping these in one place prevents the "same email,
// different case" class of duplicate records.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role folds a role value to its canonical lowercase form.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status folds a tutorial status value to lowercase.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keyword lowercases and trims a single tutorial keyword.
func Keyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keywords normalizes a keyword list, dropping empties after trimming.
func Keywords(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = Keyword(k); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// QueryParam trims a free-form query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
