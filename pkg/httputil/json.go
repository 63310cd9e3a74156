package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/connline/pkg/errors"
)

// DefaultMaxBody is the request body limit used when none is given.
const DefaultMaxBody = 1 << 20

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// WriteError writes err as an [ErrorBody]. Errors without a code are
// reported as INTERNAL_ERROR and their text is not exposed.
func WriteError(w http.ResponseWriter, err error) {
	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body = ErrorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(err))
	_ = json.NewEncoder(w).Encode(body)
}

// StatusFor maps an error's code to an HTTP status.
func StatusFor(err error) int {
	if errors.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// ReadBody reads at most limit bytes of the request body. A larger body is
// an INVALID_INPUT error. limit <= 0 means [DefaultMaxBody].
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if int64(len(data)) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", limit)
	}
	return data, nil
}

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v any, limit int64) error {
	data, err := ReadBody(r, limit)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "unexpected data after request body")
	}
	return nil
}
