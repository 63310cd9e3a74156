package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/connline/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"target", errors.New(errors.ErrCodeInvalidTargetSpec, "bad"), http.StatusBadRequest},
		{"wrapped scene", fmt.Errorf("load: %w", errors.New(errors.ErrCodeInvalidScene, "bad")), http.StatusBadRequest},
		{"not found", errors.New(errors.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{"timeout", errors.New(errors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"network", errors.New(errors.ErrCodeNetwork, "down"), http.StatusBadGateway},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "pdf"), http.StatusNotImplemented},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", "gif"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeInvalidFormat || body.Message != `invalid format: "gif"` {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("dial tcp 10.0.0.1:6379: refused"))

	if strings.Contains(rec.Body.String(), "10.0.0.1") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), string(errors.ErrCodeInternal)) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"glyph": "<➤>"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<➤>") {
		t.Errorf("HTML was escaped: %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr bool
	}{
		{"ok", `{"name":"a"}`, 0, false},
		{"unknown field", `{"name":"a","x":1}`, 0, true},
		{"trailing data", `{"name":"a"} {}`, 0, true},
		{"syntax", `{"name":`, 0, true},
		{"too large", `{"name":"abcdefgh"}`, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q", errors.GetCode(err))
			}
		})
	}
}
