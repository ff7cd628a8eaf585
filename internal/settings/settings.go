// Package settings holds the publisher settings (endpoint URL, API key and
// API secret) and persists them through a host-provided Persister.
package settings

import (
	"fmt"
	"strings"
)

// Settings is the user-editable configuration of the publisher.
type Settings struct {
	URL       string `json:"url"`
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

// Defaults returns the zero configuration: every field empty.
func Defaults() Settings {
	return Settings{URL: "", APIKey: "", APISecret: ""}
}

// Field names one settings value. The string form is also the persisted key.
type Field string

const (
	FieldURL       Field = "url"
	FieldAPIKey    Field = "apiKey"
	FieldAPISecret Field = "apiSecret"
)

// Fields lists every field in display order.
var Fields = []Field{FieldURL, FieldAPIKey, FieldAPISecret}

// ParseField accepts a field name case-insensitively.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown settings field %q", s)
}

// Get returns the value of f.
func (s Settings) Get(f Field) string {
	switch f {
	case FieldURL:
		return s.URL
	case FieldAPIKey:
		return s.APIKey
	case FieldAPISecret:
		return s.APISecret
	}
	return ""
}

// With returns a copy of s with f set to v.
func (s Settings) With(f Field, v string) Settings {
	switch f {
	case FieldURL:
		s.URL = v
	case FieldAPIKey:
		s.APIKey = v
	case FieldAPISecret:
		s.APISecret = v
	}
	return s
}

func (s Settings) data() map[string]string {
	m := make(map[string]string, len(Fields))
	for _, f := range Fields {
		m[string(f)] = s.Get(f)
	}
	return m
}

// overlay copies every present field of data over base.
func overlay(base Settings, data map[string]string) Settings {
	for _, f := range Fields {
		if v, ok := data[string(f)]; ok {
			base = base.With(f, v)
		}
	}
	return base
}
