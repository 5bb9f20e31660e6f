package govdata

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Safe-parse helpers for raw portal values. Absent keys and unparseable
// values both come back as nil pointers, never as zero or NaN, so the upsert
// layer can tell "unknown" apart from "known-empty".

func rawValue(rec RawRecord, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// cleanNumeric folds full-width digits (the registry sometimes delivers
// ０-９) to ASCII and strips thousands separators and stray spaces.
func cleanNumeric(s string) string {
	s = width.Narrow.String(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func getStringPtr(v interface{}) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" || s == "-" {
		return nil
	}
	return &s
}

func getIntPtr(v interface{}) *int {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			val := int(i)
			return &val
		}
		if f, err := n.Float64(); err == nil {
			val := int(f)
			return &val
		}
	case float64:
		val := int(n)
		return &val
	case string:
		cleaned := cleanNumeric(n)
		if cleaned == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			val := int(f)
			return &val
		}
	}
	return nil
}

func getInt64Ptr(v interface{}) *int64 {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return &i
		}
		if f, err := n.Float64(); err == nil {
			val := int64(f)
			return &val
		}
	case float64:
		val := int64(n)
		return &val
	case string:
		cleaned := cleanNumeric(n)
		if cleaned == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			val := int64(f)
			return &val
		}
	}
	return nil
}

func getFloat64Ptr(v interface{}) *float64 {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case float64:
		return &n
	case string:
		cleaned := cleanNumeric(n)
		if cleaned == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return &f
		}
	}
	return nil
}

func intOrZero(v interface{}) int {
	if p := getIntPtr(v); p != nil {
		return *p
	}
	return 0
}

func int64OrZero(v interface{}) int64 {
	if p := getInt64Ptr(v); p != nil {
		return *p
	}
	return 0
}

func float64OrZero(v interface{}) float64 {
	if p := getFloat64Ptr(v); p != nil {
		return *p
	}
	return 0
}
