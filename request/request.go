package request

import (
	"net/url"
	"strings"
)

const (
	// HeaderPrefix is the prefix of environment variables carrying
	// request headers.
	HeaderPrefix = "REQ_HEADERS_"

	// QueryPrefix is the prefix of environment variables carrying
	// query string parameters.
	QueryPrefix = "REQ_QUERY_"

	// MethodVar is the environment variable carrying the http method.
	MethodVar = "REQ_METHOD"
)

// FormContentType is the content type of form encoded request bodies.
const FormContentType = "application/x-www-form-urlencoded"

// Request is the http request of an invocation, reassembled from the
// environment.
type Request struct {
	// OriginalURL is not provided by the host yet.
	OriginalURL string `json:"originalUrl"`

	// Method is the http method, if the host provides one.
	Method string `json:"method,omitempty"`

	// Params holds route parameters. Not provided by the host yet.
	Params map[string]string `json:"params"`

	// Query holds the query string parameters, keyed by lower-cased name.
	Query map[string]string `json:"query"`

	// Headers holds the request headers, keyed by lower-cased name.
	Headers map[string]string `json:"headers"`

	// Env holds all remaining environment variables, in original case.
	Env map[string]string `json:"env"`

	// Raw is the raw request body.
	Raw string `json:"raw"`

	// Body is the decoded form body of form encoded requests.
	Body url.Values `json:"body"`
}

// New builds the request from an environment snapshot and the raw body.
func New(env Environ, raw string) *Request {
	req := &Request{
		Params:  map[string]string{},
		Query:   map[string]string{},
		Headers: map[string]string{},
		Env:     map[string]string{},
		Raw:     raw,
		Body:    url.Values{},
	}

	for k, v := range env {
		switch {
		case strings.HasPrefix(k, HeaderPrefix):
			req.Headers[strings.ToLower(k[len(HeaderPrefix):])] = v
		case strings.HasPrefix(k, QueryPrefix):
			req.Query[strings.ToLower(k[len(QueryPrefix):])] = v
		default:
			req.Env[k] = v
		}
	}

	req.Method = req.Env[MethodVar]

	if req.Header("Content-Type") == FormContentType {
		req.Body = decodeForm(raw)
	}

	return req
}

// Header returns the value of the named header. The lookup ignores case
// and treats "-" and "_" alike.
func (r *Request) Header(name string) string {
	key := strings.ToLower(name)
	if v, ok := r.Headers[key]; ok {
		return v
	}

	return r.Headers[strings.ReplaceAll(key, "-", "_")]
}

// decodeForm decodes an urlencoded body leniently. Pairs are separated by
// "&" or ";", a pair without "=" has an empty value, and invalid escapes
// are kept as they are. Client input never fails the decoding.
func decodeForm(raw string) url.Values {
	values := url.Values{}

	pairs := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == ';'
	})

	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		values.Add(unescape(key), unescape(value))
	}

	return values
}

// unescape decodes "+" and valid %XX escapes of s.
func unescape(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
