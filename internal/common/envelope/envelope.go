// Package envelope normalizes user API responses into one success/data/error
// shape regardless of how the server chose to wrap them.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error is the structured failure carried by an Envelope.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Envelope is the canonical response shape every call is normalized into.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Shape tags which response layout a body was recognized as.
type Shape int

const (
	// ShapeEmpty is an absent, non-JSON or unparseable body.
	ShapeEmpty Shape = iota
	// ShapeCoded is {code, status, data, error} keyed by a numeric code.
	ShapeCoded
	// ShapeCanonical already carries a boolean success field.
	ShapeCanonical
	// ShapeUnknown is any other JSON value; it becomes the payload.
	ShapeUnknown
)

func (s Shape) String() string {
	switch s {
	case ShapeCoded:
		return "coded"
	case ShapeCanonical:
		return "canonical"
	case ShapeUnknown:
		return "unknown"
	default:
		return "empty"
	}
}

// Body is a response body after structural inspection.
type Body struct {
	Shape  Shape
	raw    json.RawMessage
	fields map[string]json.RawMessage
}

// Inspect classifies a body. Only application/json bodies are parsed.
func Inspect(contentType string, body []byte) Body {
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return Body{Shape: ShapeEmpty}
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) || bytes.Equal(trimmed, []byte("null")) {
		return Body{Shape: ShapeEmpty}
	}

	b := Body{Shape: ShapeUnknown, raw: trimmed}
	if trimmed[0] != '{' {
		return b
	}
	if err := json.Unmarshal(trimmed, &b.fields); err != nil {
		return b
	}

	_, hasSuccess := boolField(b.fields, "success")
	_, hasCode := numberField(b.fields, "code")
	_, hasData := b.fields["data"]

	switch {
	case !hasSuccess && hasCode && hasData:
		b.Shape = ShapeCoded
	case hasSuccess:
		b.Shape = ShapeCanonical
	}
	return b
}

// RequestError is a transport-level failure: a non-2xx status or no
// response at all.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Transport wraps a failure that happened before any response arrived.
func Transport(err error) *RequestError {
	return &RequestError{Message: err.Error(), Cause: err}
}

// Normalize turns a raw HTTP response into an Envelope. A non-2xx status
// always fails with a *RequestError; the body shape alone decides success
// for 2xx responses.
func Normalize[T any](status int, contentType string, body []byte) (Envelope[T], error) {
	b := Inspect(contentType, body)

	if status < 200 || status >= 300 {
		return Envelope[T]{}, &RequestError{Status: status, Message: failureMessage(b, status)}
	}

	switch b.Shape {
	case ShapeCoded:
		return fromCoded[T](b.fields)
	case ShapeCanonical:
		return fromCanonical[T](b.fields)
	case ShapeUnknown:
		var data T
		if err := json.Unmarshal(b.raw, &data); err != nil {
			return Envelope[T]{}, fmt.Errorf("decode %s body: %w", b.Shape, err)
		}
		return Envelope[T]{Success: true, Data: &data}, nil
	default:
		return Envelope[T]{Success: true}, nil
	}
}

func fromCoded[T any](fields map[string]json.RawMessage) (Envelope[T], error) {
	code, _ := numberField(fields, "code")
	env := Envelope[T]{Success: code >= 200 && code < 300}

	data, err := decodeData[T](fields["data"])
	if err != nil {
		return Envelope[T]{}, fmt.Errorf("decode coded data: %w", err)
	}
	env.Data = data

	raw, ok := fields["error"]
	if !ok || isFalsy(raw) {
		return env, nil
	}

	nested, text := decodeErrorField(raw)
	e := &Error{Code: rawCodeText(fields["code"])}
	if nested != nil {
		if c := rawCodeText(nested["code"]); c != "" {
			e.Code = c
		}
		if m, ok := stringField(nested, "message"); ok {
			e.Message = m
		}
		if d, ok := nested["details"]; ok {
			_ = json.Unmarshal(d, &e.Details)
		}
	} else if text != "" {
		e.Message = text
	}
	if e.Message == "" {
		if s, ok := stringField(fields, "status"); ok {
			e.Message = s
		} else {
			e.Message = "Error"
		}
	}
	env.Error = e
	return env, nil
}

func fromCanonical[T any](fields map[string]json.RawMessage) (Envelope[T], error) {
	success, _ := boolField(fields, "success")
	env := Envelope[T]{Success: success}

	data, err := decodeData[T](fields["data"])
	if err != nil {
		return Envelope[T]{}, fmt.Errorf("decode canonical data: %w", err)
	}
	env.Data = data

	if raw, ok := fields["error"]; ok && !isNull(raw) {
		nested, text := decodeErrorField(raw)
		switch {
		case nested != nil:
			e := &Error{Code: rawCodeText(nested["code"])}
			e.Message, _ = stringField(nested, "message")
			if d, ok := nested["details"]; ok {
				_ = json.Unmarshal(d, &e.Details)
			}
			env.Error = e
		case text != "":
			env.Error = &Error{Message: text}
		}
	}
	return env, nil
}

// failureMessage prefers a server supplied message over the status line.
func failureMessage(b Body, status int) string {
	if b.fields != nil {
		if raw, ok := b.fields["error"]; ok {
			nested, text := decodeErrorField(raw)
			if nested != nil {
				if m, ok := stringField(nested, "message"); ok && m != "" {
					return m
				}
			} else if text != "" {
				return text
			}
		}
		if m, ok := stringField(b.fields, "message"); ok && m != "" {
			return m
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", status, http.StatusText(status)))
}

func decodeData[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// decodeErrorField accepts both {"code","message"} objects and bare strings.
func decodeErrorField(raw json.RawMessage) (map[string]json.RawMessage, string) {
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil && nested != nil {
		return nested, ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return nil, text
	}
	return nil, ""
}

func boolField(fields map[string]json.RawMessage, key string) (bool, bool) {
	raw, ok := fields[key]
	if !ok {
		return false, false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	return v, true
}

func numberField(fields map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// rawCodeText renders a string or numeric code as text.
func rawCodeText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isFalsy treats null, false, 0 and "" as an absent error.
func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", "0", `""`:
		return true
	}
	return false
}
