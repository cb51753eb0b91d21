package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func TestClassifyNATSError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{"no servers", nats.ErrNoServers, true, true},
		{"timeout", nats.ErrTimeout, true, true},
		{"connection closed", nats.ErrConnectionClosed, true, true},
		{"context canceled", context.Canceled, false, false},
		{"unknown", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		class := classifyNATSError(tc.err)
		if class.Retryable != tc.retryable || class.RecordFailure != tc.record {
			t.Fatalf("%s: got %+v, want retryable=%v record=%v", tc.name, class, tc.retryable, tc.record)
		}
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	wrapped := wrapTemporaryIfNeeded(nats.ErrNoServers)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("retryable failures must surface as temporary, got %v", wrapped)
	}

	plain := errors.New("subject misconfigured")
	if got := wrapTemporaryIfNeeded(plain); domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("permanent failures must not look temporary: %v", got)
	}

	if wrapTemporaryIfNeeded(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
