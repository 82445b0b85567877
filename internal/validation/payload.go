package validation

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/araddon/dateparse"

	"todo-tracker/internal/apperr"
)

// Payload is a request body decoded one level deep, so a field can be told
// apart as absent, explicitly null, or carrying a value of some JSON type.
type Payload map[string]json.RawMessage

// Decode parses a JSON object. An empty body decodes to an empty payload.
func Decode(body []byte) (Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Payload{}, nil
	}
	if !json.Valid(body) {
		return nil, apperr.Validation("Invalid JSON syntax")
	}
	if body[0] != '{' {
		return nil, apperr.Validation("Request body must be a JSON object")
	}
	p := Payload{}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, apperr.Validation("Invalid JSON syntax")
	}
	return p, nil
}

// Has reports whether key is present, null included.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsNull reports whether key is present with an explicit null.
func (p Payload) IsNull(key string) bool {
	raw, ok := p[key]
	return ok && isNull(raw)
}

// RequiredString returns a non-blank string field. Missing, null and falsy
// values are reported as required; other non-strings as a type error.
func (p Payload) RequiredString(key, field string) (string, error) {
	raw, ok := p[key]
	if !ok || falsy(raw) {
		return "", requiredError(field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", stringError(field)
	}
	if Blank(s) {
		return "", requiredError(field)
	}
	return s, nil
}

// OptionalString returns the field's value and whether it was present.
// When nullable, an explicit null yields (nil, true, nil).
func (p Payload) OptionalString(key, field string, nullable bool) (*string, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if isNull(raw) {
		if nullable {
			return nil, true, nil
		}
		return nil, true, stringError(field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, true, stringError(field)
	}
	return &s, true, nil
}

// OptionalBool returns the field's value and whether it was present.
func (p Payload) OptionalBool(key, field string) (bool, bool, error) {
	raw, ok := p[key]
	if !ok {
		return false, false, nil
	}
	var b bool
	if isNull(raw) || json.Unmarshal(raw, &b) != nil {
		return false, true, booleanError(field)
	}
	return b, true, nil
}

// OptionalEnum returns the field's value and whether it was present.
// The value must be a string from allowed.
func (p Payload) OptionalEnum(key, field string, allowed []string) (string, bool, error) {
	raw, ok := p[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil || !Enum(s, allowed) {
		return "", true, enumError(field, allowed)
	}
	return s, true, nil
}

// OptionalDate returns the field's value and whether it was present.
// Strings are parsed leniently in UTC, numbers are epoch milliseconds and
// null clears the date.
func (p Payload) OptionalDate(key, field string) (*time.Time, bool, error) {
	raw, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	if isNull(raw) {
		return nil, true, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return nil, true, dateError(field)
		}
		t = t.UTC()
		return &t, true, nil
	}

	var ms json.Number
	if err := json.Unmarshal(raw, &ms); err == nil {
		n, err := ms.Int64()
		if err != nil {
			return nil, true, dateError(field)
		}
		t := time.UnixMilli(n).UTC()
		return &t, true, nil
	}
	return nil, true, dateError(field)
}

// UUIDString returns a required string field that must be a UUID.
func (p Payload) UUIDString(key, field string) (string, error) {
	s, err := p.RequiredString(key, field)
	if err != nil {
		return "", err
	}
	if !UUID(s) {
		return "", uuidError(field)
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// falsy mirrors a loose truthiness check: null, false, 0 and "" are falsy.
func falsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", `""`:
		return true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n == 0
	}
	return false
}
