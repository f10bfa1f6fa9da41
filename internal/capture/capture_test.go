package capture

import (
	"context"
	"strings"
	"testing"

	"github.com/ccoppo/AcronymLookupTool/pkg/config"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

type stubClipboard struct {
	text      string
	readErr   error
	readCalls int
	copyCalls int
}

func (s *stubClipboard) ReadText() (string, error) {
	s.readCalls++
	return s.text, s.readErr
}

func (s *stubClipboard) RequestCopy() error {
	s.copyCalls++
	return nil
}

type stubHotkey struct {
	combination string
	fire        func()
}

func (s *stubHotkey) Register(combination string) error {
	s.combination = combination
	return nil
}

func (s *stubHotkey) OnFired(fn func()) {
	s.fire = fn
}

func TestValidateKey(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantKey string
		rejects bool
	}{
		{name: "simple", raw: "api", wantKey: "API"},
		{name: "padded", raw: "  FPGA \t", wantKey: "FPGA"},
		{name: "mixed punctuation", raw: "A.B-c_1!", wantKey: "A.B-C_1"},
		{name: "empty", raw: "", rejects: true},
		{name: "whitespace only", raw: "   ", rejects: true},
		{name: "multi line", raw: "API\ndocs", rejects: true},
		{name: "carriage return", raw: "API\rdocs", rejects: true},
		{name: "separators only", raw: "---", rejects: true},
		{name: "symbols only", raw: "!!!", rejects: true},
		{name: "too long", raw: strings.Repeat("A", 51), rejects: true},
		{name: "at limit", raw: strings.Repeat("A", 50), wantKey: strings.Repeat("A", 50)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := ValidateKey(tc.raw, 50)
			if tc.rejects {
				if outcome.OK() {
					t.Fatalf("expected rejection, got key %q", outcome.Key)
				}
				if outcome.Reason == "" || outcome.Key != "" {
					t.Fatalf("malformed rejection: %+v", outcome)
				}
				return
			}
			if !outcome.OK() {
				t.Fatalf("expected key, got rejection %q", outcome.Reason)
			}
			if outcome.Key != tc.wantKey {
				t.Fatalf("expected %q, got %q", tc.wantKey, outcome.Key)
			}
		})
	}
}

func TestValidateKeyUnlimitedLength(t *testing.T) {
	long := strings.Repeat("A", 200)
	if outcome := ValidateKey(long, 0); !outcome.OK() {
		t.Fatalf("zero max length must not cap, got %q", outcome.Reason)
	}
}

func TestValidateKeyLengthCountsCharactersNotBytes(t *testing.T) {
	raw := "ÉCLAIR-API" // ten characters, more bytes
	outcome := ValidateKey(raw, 10)
	if !outcome.OK() {
		t.Fatalf("ten-character selection rejected: %q", outcome.Reason)
	}
	if outcome.Key != "CLAIR-API" {
		t.Fatalf("unexpected key %q", outcome.Key)
	}
	if ValidateKey("X"+raw, 10).OK() {
		t.Fatal("eleven characters must exceed a limit of ten")
	}
}

func newTestPipeline(t *testing.T, clip Clipboard, handler Handler, failed FailureHandler) *Pipeline {
	t.Helper()
	if failed == nil {
		failed = func(context.Context, string) {}
	}
	p, err := NewPipeline(clip, handler, failed, config.CaptureConfig{Hotkey: "ctrl+shift+d", MaxKeyLength: 50}, nil, nil)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return p
}

func TestPipelineHappyPath(t *testing.T) {
	clip := &stubClipboard{text: " sram "}
	var captured []string
	p := newTestPipeline(t, clip, func(_ context.Context, key string) {
		captured = append(captured, key)
	}, nil)

	if p.State() != enums.CaptureStateIdle {
		t.Fatalf("expected idle start, got %s", p.State())
	}

	p.HotkeyFired(context.Background())
	if p.State() != enums.CaptureStateAwaitingCopy {
		t.Fatalf("expected awaiting copy, got %s", p.State())
	}
	if clip.copyCalls != 1 {
		t.Fatal("expected copy request")
	}

	p.ClipboardReady(context.Background())
	if p.State() != enums.CaptureStateIdle {
		t.Fatalf("expected return to idle, got %s", p.State())
	}
	if len(captured) != 1 || captured[0] != "SRAM" {
		t.Fatalf("unexpected capture: %v", captured)
	}
}

func TestPipelineIgnoresOutOfOrderSignals(t *testing.T) {
	clip := &stubClipboard{text: "API"}
	var captured []string
	p := newTestPipeline(t, clip, func(_ context.Context, key string) {
		captured = append(captured, key)
	}, nil)

	// Clipboard without a preceding hotkey is noise.
	p.ClipboardReady(context.Background())
	if p.State() != enums.CaptureStateIdle || clip.readCalls != 0 {
		t.Fatalf("stray clipboard signal must be dropped, state=%s reads=%d", p.State(), clip.readCalls)
	}

	// A second hotkey while already waiting is noise too.
	p.HotkeyFired(context.Background())
	p.HotkeyFired(context.Background())
	if p.State() != enums.CaptureStateAwaitingCopy || clip.copyCalls != 1 {
		t.Fatalf("repeat hotkey must be dropped, state=%s copies=%d", p.State(), clip.copyCalls)
	}

	p.ClipboardReady(context.Background())
	if len(captured) != 1 {
		t.Fatalf("expected exactly one capture, got %v", captured)
	}
}

func TestPipelineInvalidTextReturnsToIdleWithoutHandler(t *testing.T) {
	clip := &stubClipboard{text: "multi\nline"}
	handled := 0
	p := newTestPipeline(t, clip, func(context.Context, string) { handled++ }, nil)

	p.HotkeyFired(context.Background())
	p.ClipboardReady(context.Background())

	if handled != 0 {
		t.Fatal("invalid text must not reach the handler")
	}
	if p.State() != enums.CaptureStateIdle {
		t.Fatalf("expected idle after rejection, got %s", p.State())
	}

	// The machine stays usable for the next capture.
	clip.text = "API"
	p.HotkeyFired(context.Background())
	p.ClipboardReady(context.Background())
	if handled != 1 {
		t.Fatal("pipeline wedged after a rejected capture")
	}
}

func TestPipelineClipboardErrorReturnsToIdle(t *testing.T) {
	clip := &stubClipboard{readErr: context.DeadlineExceeded}
	handled := 0
	p := newTestPipeline(t, clip, func(context.Context, string) { handled++ }, nil)

	p.HotkeyFired(context.Background())
	p.ClipboardReady(context.Background())

	if handled != 0 || p.State() != enums.CaptureStateIdle {
		t.Fatalf("expected clean reset, handled=%d state=%s", handled, p.State())
	}
}

func TestPipelineBindRoutesHotkeyPresses(t *testing.T) {
	clip := &stubClipboard{text: "API"}
	p := newTestPipeline(t, clip, func(context.Context, string) {}, nil)
	registrar := &stubHotkey{}

	if err := p.Bind(context.Background(), registrar, "ctrl+shift+d"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if registrar.combination != "ctrl+shift+d" {
		t.Fatalf("unexpected combination %q", registrar.combination)
	}
	if registrar.fire == nil {
		t.Fatal("expected a fire callback")
	}

	registrar.fire()
	if p.State() != enums.CaptureStateAwaitingCopy {
		t.Fatalf("press did not reach the pipeline, state=%s", p.State())
	}
}

func TestPipelineReportsRejectionReason(t *testing.T) {
	clip := &stubClipboard{text: "multi\nline"}
	var reasons []string
	p := newTestPipeline(t, clip,
		func(context.Context, string) { t.Fatal("invalid text must not produce a key") },
		func(_ context.Context, reason string) { reasons = append(reasons, reason) })

	p.HotkeyFired(context.Background())
	p.ClipboardReady(context.Background())

	if len(reasons) != 1 || reasons[0] != "selection spans multiple lines" {
		t.Fatalf("expected the rejection reason, got %v", reasons)
	}
}

func TestPipelineReportsClipboardReadFailure(t *testing.T) {
	clip := &stubClipboard{readErr: context.DeadlineExceeded}
	var reasons []string
	p := newTestPipeline(t, clip,
		func(context.Context, string) { t.Fatal("a failed read must not produce a key") },
		func(_ context.Context, reason string) { reasons = append(reasons, reason) })

	p.HotkeyFired(context.Background())
	p.ClipboardReady(context.Background())

	if len(reasons) != 1 || reasons[0] != "clipboard read failed" {
		t.Fatalf("expected the read failure reason, got %v", reasons)
	}
	if p.State() != enums.CaptureStateIdle {
		t.Fatalf("expected idle after failure, got %s", p.State())
	}
}
