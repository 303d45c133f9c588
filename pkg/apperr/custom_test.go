package apperr

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Run("Error message format", func(t *testing.T) {
		err := NewValidationError("packageName", "must not be empty")
		got := err.Error()
		if !strings.Contains(got, "validation error") {
			t.Errorf("error message should contain 'validation error': %s", got)
		}
		if !strings.Contains(got, "field=packageName") {
			t.Errorf("error message should contain 'field=packageName': %s", got)
		}
		if !strings.Contains(got, "message=must not be empty") {
			t.Errorf("error message should contain 'message=must not be empty': %s", got)
		}
	})

	t.Run("Fields are accessible", func(t *testing.T) {
		err := NewValidationError("webhookUrl", "invalid URL")
		if err.Field != "webhookUrl" {
			t.Errorf("Field = %q, want %q", err.Field, "webhookUrl")
		}
		if err.Message != "invalid URL" {
			t.Errorf("Message = %q, want %q", err.Message, "invalid URL")
		}
	})
}

func TestWebhookError(t *testing.T) {
	t.Run("Error message without cause", func(t *testing.T) {
		err := NewWebhookError("http://tpa.example/webhook", 500, nil)
		got := err.Error()
		if !strings.Contains(got, "webhook error") {
			t.Errorf("error message should contain 'webhook error': %s", got)
		}
		if !strings.Contains(got, "url=http://tpa.example/webhook") {
			t.Errorf("error message should contain url: %s", got)
		}
		if !strings.Contains(got, "statusCode=500") {
			t.Errorf("error message should contain 'statusCode=500': %s", got)
		}
	})

	t.Run("Error message with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewWebhookError("http://tpa.example/webhook", 0, cause)
		got := err.Error()
		if !strings.Contains(got, "cause=connection refused") {
			t.Errorf("error message should contain cause: %s", got)
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("timeout")
		err := NewWebhookError("u", 504, cause)
		if err.Unwrap() != cause {
			t.Error("Unwrap should return the cause")
		}
	})

	t.Run("Unwrap returns nil when no cause", func(t *testing.T) {
		err := NewWebhookError("u", 500, nil)
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil when no cause")
		}
	})

	t.Run("errors.Is with wrapped error", func(t *testing.T) {
		err := NewWebhookError("u", 502, ErrWebhookCommunication)
		if !errors.Is(err, ErrWebhookCommunication) {
			t.Error("errors.Is should find wrapped sentinel error")
		}
	})
}

func TestValkeyError(t *testing.T) {
	t.Run("Error message without cause", func(t *testing.T) {
		err := NewValkeyError("HGETALL", "tpareg:abc", nil)
		got := err.Error()
		if !strings.Contains(got, "valkey error") {
			t.Errorf("error message should contain 'valkey error': %s", got)
		}
		if !strings.Contains(got, "operation=HGETALL") {
			t.Errorf("error message should contain 'operation=HGETALL': %s", got)
		}
		if !strings.Contains(got, "key=tpareg:abc") {
			t.Errorf("error message should contain 'key=tpareg:abc': %s", got)
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("connection lost")
		err := NewValkeyError("SET", "key", cause)
		if err.Unwrap() != cause {
			t.Error("Unwrap should return the cause")
		}
	})

	t.Run("errors.Is with wrapped sentinel error", func(t *testing.T) {
		err := NewValkeyError("PING", "", ErrValkeyConnection)
		if !errors.Is(err, ErrValkeyConnection) {
			t.Error("errors.Is should find wrapped sentinel error")
		}
	})
}

func TestProtocolError(t *testing.T) {
	err := NewProtocolError("subscription_update", "missing subscriptions")
	got := err.Error()
	if !strings.Contains(got, "type=subscription_update") {
		t.Errorf("error message should contain type: %s", got)
	}
	if !strings.Contains(got, "reason=missing subscriptions") {
		t.Errorf("error message should contain reason: %s", got)
	}
	if !errors.Is(err, ErrInvalidMessage) {
		t.Error("ProtocolError should match ErrInvalidMessage")
	}
}
