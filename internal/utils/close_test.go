package utils

import (
	"io"
	"strings"
	"testing"
)

func TestCancelOnClose(t *testing.T) {
	cancelled := false
	body := &CancelOnClose{
		ReadCloser: io.NopCloser(strings.NewReader("payload")),
		Cancel:     func() { cancelled = true },
	}

	data, err := io.ReadAll(body)
	if err != nil || string(data) != "payload" {
		t.Fatalf("ReadAll() = %q, %v", data, err)
	}
	if cancelled {
		t.Fatal("context cancelled before Close")
	}
	if err := body.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !cancelled {
		t.Error("Close() should cancel the context")
	}
}

func TestCancelOnCloseNilCancel(t *testing.T) {
	body := &CancelOnClose{ReadCloser: io.NopCloser(strings.NewReader(""))}
	if err := body.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
