package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "target spec",
			err:  New(ErrCodeInvalidTargetSpec, "unsupported target %T", true),
			want: "INVALID_TARGET_SPEC: unsupported target bool",
		},
		{
			name: "scene with cause",
			err:  Wrap(ErrCodeInvalidScene, errors.New("line 3: expected '='"), "decode flow.toml"),
			want: "INVALID_SCENE: decode flow.toml: line 3: expected '='",
		},
		{
			name: "path",
			err:  New(ErrCodeInvalidPath, "path %q escapes the scene directory", "../x.json"),
			want: `INVALID_PATH: path "../x.json" escapes the scene directory`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch regions from %s", "redis://cache:6379")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Errorf("cause lost from %v", err)
	}
	if err.Message != "fetch regions from redis://cache:6379" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestCodeLookup(t *testing.T) {
	targetErr := New(ErrCodeInvalidTargetSpec, "bad target")
	sceneErr := Wrap(ErrCodeInvalidScene, targetErr, "connector %q", "a-b")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"direct", targetErr, ErrCodeInvalidTargetSpec, true, ErrCodeInvalidTargetSpec},
		{"outermost code wins", sceneErr, ErrCodeInvalidScene, true, ErrCodeInvalidScene},
		{"inner code hidden", sceneErr, ErrCodeInvalidTargetSpec, false, ErrCodeInvalidScene},
		{"fmt wrapped", fmt.Errorf("load: %w", targetErr), ErrCodeInvalidTargetSpec, true, ErrCodeInvalidTargetSpec},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false, ""},
		{"nil", nil, ErrCodeInvalidInput, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidTargetSpec, "target [1, 2, 3] has 3 numbers"), "target [1, 2, 3] has 3 numbers"},
		{"coded with cause", Wrap(ErrCodeInvalidScene, errors.New("eof"), "decode flow.hcl"), "decode flow.hcl"},
		{"fmt wrapped", fmt.Errorf("render: %w", New(ErrCodeNotFound, "scene flow.toml")), "scene flow.toml"},
		{"plain", errors.New("rsvg-convert not installed"), "rsvg-convert not installed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"target spec", New(ErrCodeInvalidTargetSpec, "bad"), true},
		{"scene", Wrap(ErrCodeInvalidScene, errors.New("x"), "bad scene"), true},
		{"path", New(ErrCodeInvalidPath, "bad"), true},
		{"format", New(ErrCodeInvalidFormat, "bad"), true},
		{"style", New(ErrCodeInvalidStyle, "bad"), true},
		{"input", New(ErrCodeInvalidInput, "bad"), true},
		{"not found", New(ErrCodeNotFound, "gone"), false},
		{"network", New(ErrCodeNetwork, "down"), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}
