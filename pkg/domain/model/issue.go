package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// UnknownValue is substituted for any issue attribute missing from the scanner output
const UnknownValue = "unknown"

// Issue represents a single static-analysis finding
type Issue struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Component string `json:"component"`
	Message   string `json:"message"`
}

// UnmarshalJSON decodes an issue record, defaulting missing or null
// type/severity/component to UnknownValue and message to an empty string.
// Numbers and booleans are kept as their JSON text, e.g. "severity": 2 becomes "2".
func (i *Issue) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      json.RawMessage `json:"type"`
		Severity  json.RawMessage `json:"severity"`
		Component json.RawMessage `json:"component"`
		Message   json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "failed to decode issue record", goerr.T(ErrTagInvalidAnalysis))
	}

	var decoded Issue
	fields := []struct {
		name     string
		raw      json.RawMessage
		dst      *string
		fallback string
	}{
		{"type", raw.Type, &decoded.Type, UnknownValue},
		{"severity", raw.Severity, &decoded.Severity, UnknownValue},
		{"component", raw.Component, &decoded.Component, UnknownValue},
		{"message", raw.Message, &decoded.Message, ""},
	}
	for _, f := range fields {
		v, err := scalarString(f.raw, f.fallback)
		if err != nil {
			return goerr.Wrap(err, "invalid issue field",
				goerr.T(ErrTagInvalidAnalysis),
				goerr.V("field", f.name))
		}
		*f.dst = v
	}

	*i = decoded
	return nil
}

// scalarString converts a JSON scalar to a string. Absent or null yields fallback;
// objects and arrays are rejected.
func scalarString(raw json.RawMessage, fallback string) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fallback, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", goerr.Wrap(err, "failed to decode string value")
		}
		return s, nil
	case '{', '[':
		return "", goerr.New("issue field must be a scalar value",
			goerr.V("value", string(trimmed)))
	default:
		return string(trimmed), nil
	}
}

// IssueReport is the document stored in issues.json
type IssueReport struct {
	Issues []Issue `json:"issues"`
}

// ParseIssueReport decodes an issues.json document.
// A document without an "issues" field yields an empty list.
func ParseIssueReport(data []byte) (*IssueReport, error) {
	var report IssueReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, goerr.Wrap(err, "failed to parse issue report",
			goerr.T(ErrTagInvalidAnalysis))
	}
	return &report, nil
}
