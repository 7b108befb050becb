// Package featureflags provides runtime switches for plan preview, import and the weekly digest.
package featureflags

import (
	"encoding/json"
	"time"
)

// Well-known feature flag keys.
const (
	// FlagDisablePlanPreview turns off the unauthenticated plan preview endpoint.
	FlagDisablePlanPreview = "disable_plan_preview"

	// FlagDisableImport rejects backup imports.
	FlagDisableImport = "disable_import"

	// FlagDisableCheckinDigest stops the worker from publishing weekly digests.
	FlagDisableCheckinDigest = "disable_checkin_digest"

	// FlagProgressWeeks is the default number of weeks in a progress report.
	FlagProgressWeeks = "progress_weeks"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

func (f *Flag) clone() *Flag {
	cpy := *f
	return &cpy
}

// BoolValue returns the flag value as a boolean, or defaultValue.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return defaultValue
	}
}

// IntValue returns the flag value as an integer, or defaultValue.
func (f *Flag) IntValue(defaultValue int) int {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		// JSON unmarshals numbers as float64
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return defaultValue
}

// DefaultFlags returns the default feature flags.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagDisablePlanPreview:   {Key: FlagDisablePlanPreview, Value: false, UpdatedAt: now},
		FlagDisableImport:        {Key: FlagDisableImport, Value: false, UpdatedAt: now},
		FlagDisableCheckinDigest: {Key: FlagDisableCheckinDigest, Value: false, UpdatedAt: now},
		FlagProgressWeeks:        {Key: FlagProgressWeeks, Value: 8, UpdatedAt: now},
	}
}
