package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsAndGetCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeTransport, cause, "fetch %s", "https://example.org")

	if !Is(err, ErrCodeTransport) {
		t.Errorf("Is(%v, TRANSPORT) = false", err)
	}
	if Is(err, ErrCodeNoMatch) {
		t.Errorf("Is(%v, NO_MATCH) = true", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}

	wrapped := fmt.Errorf("attempt 3: %w", err)
	if got := GetCode(wrapped); got != ErrCodeTransport {
		t.Errorf("GetCode(wrapped) = %q, want %q", got, ErrCodeTransport)
	}
	if got := GetCode(cause); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeTransport, true},
		{ErrCodeNoMatch, true},
		{ErrCodeVersionNotFound, true},
		{ErrCodeEmptyUpstream, false},
		{ErrCodeNoSelector, false},
		{ErrCodeInvalidQuery, false},
		{ErrCodeGenericFailure, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := Retryable(New(tt.code, "x")); got != tt.want {
				t.Errorf("Retryable(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	if Retryable(errors.New("plain")) {
		t.Error("plain errors must not be retryable")
	}
}

func TestGenericFailureHidesCause(t *testing.T) {
	last := New(ErrCodeNoMatch, "no element matches")
	err := Wrap(ErrCodeGenericFailure, last, "gave up after %d attempts", 7)

	if GetCode(err) != ErrCodeGenericFailure {
		t.Errorf("GetCode = %q, want GENERIC_FAILURE", GetCode(err))
	}
	if Retryable(err) {
		t.Error("exhausted failures must not be retryable")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNoSelector, "no selector for %s", "x")); got != "no selector for x" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage = %q", got)
	}
}
