package capture

import (
	"context"
	"sync"

	"github.com/ccoppo/AcronymLookupTool/pkg/config"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
)

// Handler receives each successfully captured key.
type Handler func(ctx context.Context, key string)

// FailureHandler receives a human-readable reason each time a capture
// attempt produces no key.
type FailureHandler func(ctx context.Context, reason string)

// Pipeline is the capture state machine. One instance serves the whole
// process; transitions are serialized under the mutex. Signals that arrive in
// the wrong state are dropped with a log line, never an error or a panic, so
// a jittery hotkey cannot wedge the machine.
type Pipeline struct {
	mu    sync.Mutex
	state enums.CaptureState

	clipboard    Clipboard
	handler      Handler
	failed       FailureHandler
	maxKeyLength int
	metrics      *metrics.LookupMetrics
	logg         *logger.Logger
}

// NewPipeline builds the capture pipeline in the idle state. Both outcomes
// have a handler: captured keys go to handler, everything else surfaces as a
// reason through failed.
func NewPipeline(clip Clipboard, handler Handler, failed FailureHandler, cfg config.CaptureConfig, m *metrics.LookupMetrics, logg *logger.Logger) (*Pipeline, error) {
	if clip == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clipboard is required")
	}
	if handler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capture handler is required")
	}
	if failed == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "failure handler is required")
	}
	return &Pipeline{
		state:        enums.CaptureStateIdle,
		clipboard:    clip,
		handler:      handler,
		failed:       failed,
		maxKeyLength: cfg.MaxKeyLength,
		metrics:      m,
		logg:         logg,
	}, nil
}

// Bind registers the configured combination on the shell's hotkey registrar
// and routes every press into the pipeline.
func (p *Pipeline) Bind(ctx context.Context, registrar Hotkey, combination string) error {
	if registrar == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "hotkey registrar is required")
	}
	if err := registrar.Register(combination); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register hotkey")
	}
	registrar.OnFired(func() {
		p.HotkeyFired(ctx)
	})
	return nil
}

// State returns the current machine state.
func (p *Pipeline) State() enums.CaptureState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HotkeyFired moves idle to awaiting-copy and asks the environment for the
// copy. Fired in any other state it is a dropped signal.
func (p *Pipeline) HotkeyFired(ctx context.Context) {
	if !p.transition(ctx, enums.CaptureStateIdle, enums.CaptureStateAwaitingCopy, "hotkey") {
		return
	}
	if err := p.clipboard.RequestCopy(); err != nil && p.logg != nil {
		p.logg.Warn(ctx, "copy request failed")
	}
}

// ClipboardReady moves awaiting-copy to processing, validates the clipboard
// text, and hands a usable key to the handler. A failed read or a rejected
// selection reaches the failure handler as a reason instead. The machine
// always returns to idle, whatever the clipboard held.
func (p *Pipeline) ClipboardReady(ctx context.Context) {
	if !p.transition(ctx, enums.CaptureStateAwaitingCopy, enums.CaptureStateProcessing, "clipboard") {
		return
	}
	defer p.reset()

	text, err := p.clipboard.ReadText()
	if err != nil {
		p.captureFailed(ctx, "clipboard read failed", err)
		return
	}

	outcome := ValidateKey(text, p.maxKeyLength)
	if !outcome.OK() {
		p.captureFailed(ctx, outcome.Reason, nil)
		return
	}

	p.handler(ctx, outcome.Key)
}

// transition swaps from into to under the lock, logging and refusing anything
// out of order.
func (p *Pipeline) transition(ctx context.Context, from, to enums.CaptureState, signal string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != from {
		if p.logg != nil {
			ctx = p.logg.WithFields(ctx, map[string]any{
				"signal": signal,
				"state":  p.state.String(),
			})
			p.logg.Debug(ctx, "capture signal ignored")
		}
		return false
	}
	p.state = to
	return true
}

func (p *Pipeline) reset() {
	p.mu.Lock()
	p.state = enums.CaptureStateIdle
	p.mu.Unlock()
}

func (p *Pipeline) captureFailed(ctx context.Context, reason string, err error) {
	p.metrics.IncCaptureFailure()
	p.failed(ctx, reason)
	if p.logg == nil {
		return
	}
	ctx = p.logg.WithField(ctx, "reason", reason)
	if err != nil {
		p.logg.Error(ctx, "capture failed", err)
		return
	}
	p.logg.Warn(ctx, "capture rejected")
}
