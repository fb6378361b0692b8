package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result is the uniform outcome of one request. Transport failures and non-2xx
// statuses are reported through Err with Success=false; nothing panics past it.
type Result struct {
	Success bool
	Status  int
	Data    []byte
	Err     error
}

// Decode unmarshals the response body into v.
func (r Result) Decode(v any) error {
	if len(bytes.TrimSpace(r.Data)) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.Data, v)
}

// Empty reports whether the body carries no data: nothing, null, {} or [].
func (r Result) Empty() bool {
	b := bytes.TrimSpace(r.Data)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return true
	}
	switch b[0] {
	case '{':
		var m map[string]json.RawMessage
		return json.Unmarshal(b, &m) == nil && len(m) == 0
	case '[':
		var a []json.RawMessage
		return json.Unmarshal(b, &a) == nil && len(a) == 0
	}
	return false
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("request failed with status code %d", e.Code)
	}
	return fmt.Sprintf("request failed with status code %d: %s", e.Code, body)
}

// IsStatus reports whether err carries an HTTP status error with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
