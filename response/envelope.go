package response

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"strings"
)

const (
	keyStatus  = "status"
	keyHeaders = "headers"
	keyBody    = "body"
	keyIsRaw   = "isRaw"
)

// ContentTypeHeader is the header holding the content type of the body.
const ContentTypeHeader = "Content-Type"

// Envelope is the http response written back to the host.
//
// An envelope is either built from parts, or wraps a response object
// supplied by the handler. Both forms share one representation.
type Envelope struct {
	fields map[string]any
}

// FromParts builds an envelope from a status code, headers and a body.
//
// If headers is non-nil and has no Content-Type, the content type is
// set to text/html for bodies starting with "<" and text/plain
// otherwise. A nil headers map gets no content type. The given map is
// not modified.
func FromParts(status int, headers map[string]string, body string) *Envelope {
	var h map[string]string
	if headers != nil {
		h = maps.Clone(headers)
		if _, ok := h[ContentTypeHeader]; !ok {
			h[ContentTypeHeader] = defaultContentType(body)
		}
	} else {
		h = map[string]string{}
	}

	return &Envelope{
		fields: map[string]any{
			keyStatus:  status,
			keyHeaders: h,
			keyBody:    body,
		},
	}
}

// FromRaw wraps a complete response object. The object is used as-is,
// apart from the isRaw flag. A nil or empty object yields the default
// response, FromParts(200, nil, "").
func FromRaw(obj map[string]any) *Envelope {
	if len(obj) == 0 {
		return FromParts(http.StatusOK, nil, "")
	}

	return &Envelope{fields: maps.Clone(obj)}
}

// MarkRaw sets the isRaw flag, which tells the host to pass the body
// through without wrapping it.
func (e *Envelope) MarkRaw() *Envelope {
	e.fields[keyIsRaw] = true
	return e
}

// IsRaw reports whether the isRaw flag is set to true.
func (e *Envelope) IsRaw() bool {
	raw, _ := e.fields[keyIsRaw].(bool)
	return raw
}

// Status returns the status code, or 0 if the envelope has none.
func (e *Envelope) Status() int {
	status := e.fields[keyStatus]

	if n, ok := status.(json.Number); ok {
		i, _ := n.Int64()
		return int(i)
	}

	v := reflect.ValueOf(status)

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return int(v.Float())
	}

	return 0
}

// Header returns the named response header.
func (e *Envelope) Header(name string) string {
	switch h := e.fields[keyHeaders].(type) {
	case map[string]string:
		return h[name]
	case map[string]any:
		if v, ok := h[name]; ok {
			return fmt.Sprint(v)
		}
	}

	return ""
}

// Body returns the body rendered as a string. A missing body is empty.
func (e *Envelope) Body() string {
	switch b := e.fields[keyBody].(type) {
	case nil:
		return ""
	case string:
		return b
	default:
		return fmt.Sprint(b)
	}
}

// Fields returns a copy of the response object.
func (e *Envelope) Fields() map[string]any {
	return maps.Clone(e.fields)
}

// MarshalJSON encodes the response object.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.fields)
}

func defaultContentType(body string) string {
	if strings.HasPrefix(body, "<") {
		return "text/html"
	}

	return "text/plain"
}
