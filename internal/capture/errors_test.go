package capture

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesKindSentinel(t *testing.T) {
	cause := errors.New("device lost")
	err := newError(KindCaptureFailed, "capture_monitor", cause, "monitor %q", "A")

	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatal("expected ErrCaptureFailed")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("must not match another kind")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	msg := err.Error()
	for _, want := range []string{"capture_monitor", "capture_failed", `monitor "A"`, "device lost"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := newError(KindNotFound, "window_at", nil, "nothing here")
	wrapped := fmt.Errorf("cli: %w", inner)
	if got := KindOf(wrapped); got != KindNotFound {
		t.Fatalf("KindOf = %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Fatalf("KindOf plain error = %v", got)
	}
	if KindUnknown.String() != "unknown" || KindAmbiguous.String() != "ambiguous" {
		t.Fatal("unexpected kind names")
	}
}

func TestPassthroughKeepsInnerKind(t *testing.T) {
	inner := newError(KindUnavailable, "list_monitors", nil, "gone")
	err := passthrough(KindCaptureFailed, "capture_virtual_desktop", fmt.Errorf("monitor: %w", inner))
	if KindOf(err) != KindUnavailable {
		t.Fatalf("inner kind lost: %v", err)
	}

	err = passthrough(KindCaptureFailed, "capture_virtual_desktop", errFake)
	if KindOf(err) != KindCaptureFailed || !errors.Is(err, errFake) {
		t.Fatalf("plain error not wrapped: %v", err)
	}
}
