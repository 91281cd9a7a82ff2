package qabot

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "Endpoint", Msg: "Q&A endpoint is required"}

	want := "config error: Endpoint: Q&A endpoint is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Key: sessionStoreKey, Op: "write", Err: cause}

	want := "storage error: write qa_bot_session_messages: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestRequestError(t *testing.T) {
	tests := []struct {
		name string
		err  *RequestError
		want string
	}{
		{
			name: "status error",
			err:  &RequestError{Endpoint: "https://qa.test", Status: 502},
			want: "request error [https://qa.test]: status 502",
		},
		{
			name: "transport error",
			err:  &RequestError{Endpoint: "https://qa.test", Err: errors.New("connection refused")},
			want: "request error [https://qa.test]: connection refused",
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

func TestRequestError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	wrapped := fmt.Errorf("asking backend: %w", &RequestError{Endpoint: "https://qa.test", Err: cause})

	var reqErr *RequestError
	if !errors.As(wrapped, &reqErr) {
		t.Fatal("errors.As() should find the RequestError through wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() should find the transport cause")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "http status",
			err:  &RequestError{Endpoint: "e", Status: 500},
			want: "http_500",
		},
		{
			name: "wrapped http status",
			err:  fmt.Errorf("outer: %w", &RequestError{Endpoint: "e", Status: 404}),
			want: "http_404",
		},
		{
			name: "transport failure",
			err:  &RequestError{Endpoint: "e", Err: errors.New("refused")},
			want: "network",
		},
		{
			name: "parse failure",
			err:  errors.New("invalid response format"),
			want: "invalid_response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %q, want %q", got, tt.want)
			}
		})
	}
}
