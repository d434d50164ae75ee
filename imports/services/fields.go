package services

import (
	"fmt"
	"strconv"
	"strings"
)

// stringField returns the record value as a string, empty when the field is
// absent or nil. Non-string scalars (spreadsheet numerics, JSON numbers)
// are rendered with their default formatting.
func stringField(record RawRecord, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// intField parses the value as an integer, returning the fallback for
// missing or unparseable values.
func intField(record RawRecord, key string, fallback int) int {
	v, ok := record[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return fallback
}

// boolField parses the value as a boolean, returning the fallback for
// missing or unparseable values.
func boolField(record RawRecord, key string, fallback bool) bool {
	v, ok := record[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return fallback
}

// listField returns the value as a string slice. Only genuine lists count;
// anything else yields an empty slice, matching the source behaviour of
// discarding non-list tags.
func listField(record RawRecord, key string) []string {
	v, ok := record[key]
	if !ok || v == nil {
		return []string{}
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return []string{}
}
