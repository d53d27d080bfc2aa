package location

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider scripts one provider tier and counts its attempts.
type fakeProvider struct {
	name   string
	result Result
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Attempt(ctx context.Context) Result {
	f.calls++
	return f.result
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &fakeProvider{name: "native", result: Success(FromCoordinates(37.77, -122.42, SourceNative))}
	second := &fakeProvider{name: "ipapi", result: Success(FromCoordinates(1, 1, SourceNetwork))}

	chain := NewChain(testLogger(), first, second)
	res := chain.Locate(context.Background())

	if res.Status != StatusSuccess {
		t.Fatalf("expected success, got %v (%s)", res.Status, res.Reason)
	}
	if res.Location.Source != SourceNative {
		t.Fatalf("expected native source, got %s", res.Location.Source)
	}
	if second.calls != 0 {
		t.Fatalf("lower tier must not be attempted after a success, got %d calls", second.calls)
	}
}

func TestChainFallsThroughUnavailable(t *testing.T) {
	first := &fakeProvider{name: "native", result: Unavailable("wrong platform")}
	second := &fakeProvider{name: "ipapi", result: Success(FromCoordinates(37.77, -122.42, SourceNetwork))}

	res := NewChain(testLogger(), first, second).Locate(context.Background())

	if res.Status != StatusSuccess {
		t.Fatalf("expected success from second tier, got %v", res.Status)
	}
	if res.Location.Source != SourceNetwork {
		t.Fatalf("expected network source, got %s", res.Location.Source)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("expected one attempt each, got %d and %d", first.calls, second.calls)
	}
}

func TestChainFallsThroughError(t *testing.T) {
	first := &fakeProvider{name: "native", result: Failure("timed out waiting for a fix")}
	second := &fakeProvider{name: "ipapi", result: Success(FromCoordinates(51.5, -0.12, SourceNetwork))}

	res := NewChain(testLogger(), first, second).Locate(context.Background())

	if res.Status != StatusSuccess {
		t.Fatalf("expected fallback after a transient error, got %v", res.Status)
	}
}

func TestChainAllFail(t *testing.T) {
	first := &fakeProvider{name: "native", result: Unavailable("wrong platform")}
	second := &fakeProvider{name: "ipapi", result: Failure("network unreachable")}

	res := NewChain(testLogger(), first, second).Locate(context.Background())

	if res.Status != StatusUnavailable {
		t.Fatalf("expected terminal unavailable, got %v", res.Status)
	}
	if res.Reason != "network unreachable" {
		t.Fatalf("expected the last tier's reason, got %q", res.Reason)
	}
}

func TestChainEmpty(t *testing.T) {
	res := NewChain(testLogger()).Locate(context.Background())
	if res.Status != StatusUnavailable {
		t.Fatalf("expected unavailable from an empty chain, got %v", res.Status)
	}
}

func TestChainIsStateless(t *testing.T) {
	p := &fakeProvider{name: "native", result: Unavailable("wrong platform")}
	chain := NewChain(testLogger(), p)

	chain.Locate(context.Background())
	chain.Locate(context.Background())

	if p.calls != 2 {
		t.Fatalf("expected a fresh attempt per Locate call, got %d", p.calls)
	}
}
