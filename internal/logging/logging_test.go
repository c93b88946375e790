package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestFromContextFallback(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatalf("FromContext returned nil on a bare context")
	}
}

func TestNewContextRoundTrip(t *testing.T) {
	want := zap.NewNop().Sugar()
	ctx := NewContext(context.Background(), want)

	got := FromContext(ctx)
	if got != want {
		t.Fatalf("FromContext did not return the logger stored by NewContext")
	}
}

func TestNewLogger(t *testing.T) {
	for _, dev := range []bool{true, false} {
		logger, err := NewLogger(dev)
		if err != nil {
			t.Fatalf("NewLogger(%v): %v", dev, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%v) returned nil logger", dev)
		}
	}
}
