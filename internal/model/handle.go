// Package model owns the process-wide embedding model handle: one backend
// reference, initialized before the listener binds, read concurrently by
// request handlers, torn down after the listener stops.
package model

import (
	"context"
	"fmt"
	"sync/atomic"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cortexhq/embedding-service/internal/embeddings"
)

// Handle states. The only transitions are
// Uninitialized -> Loading -> Ready|Failed and Ready -> Stopped.
const (
	stateUninitialized int32 = iota
	stateLoading
	stateReady
	stateFailed
	stateStopped
)

// probeText is the fixed self-test input embedded during Initialize.
const probeText = "function test() { return 42; }"

// Handle owns the single backend reference for the process lifetime.
// It is written twice (Initialize, Teardown), both outside the serving
// window; every handler operation is a read-only delegation.
type Handle struct {
	provider  embeddings.Provider
	log       zerolog.Logger
	state     atomic.Int32
	dimension atomic.Int32
}

// NewHandle creates an uninitialized handle over the given provider.
func NewHandle(provider embeddings.Provider, log zerolog.Logger) *Handle {
	return &Handle{provider: provider, log: log}
}

// Initialize probes the backend with a fixed test embedding. On success the
// handle records the measured dimension and becomes Ready. On failure the
// handle is Failed and the caller must abort startup: the service never
// accepts traffic without a working model.
func (h *Handle) Initialize(ctx context.Context) error {
	if !h.state.CompareAndSwap(stateUninitialized, stateLoading) {
		return fmt.Errorf("handle already initialized")
	}

	vec, err := h.provider.Embed(ctx, probeText)
	if err != nil {
		h.state.Store(stateFailed)
		return pkgerrors.Wrap(err, "startup probe failed")
	}
	if len(vec) == 0 {
		h.state.Store(stateFailed)
		return pkgerrors.New("startup probe returned an empty embedding")
	}

	h.dimension.Store(int32(len(vec)))
	h.state.Store(stateReady)
	h.log.Info().Int("dimension", len(vec)).Msg("embedding model loaded")
	return nil
}

// Loaded reports whether the handle is Ready to serve embed calls.
func (h *Handle) Loaded() bool {
	return h.state.Load() == stateReady
}

// Dimension returns the embedding dimension measured by the startup probe,
// or 0 before Initialize succeeds.
func (h *Handle) Dimension() int {
	return int(h.dimension.Load())
}

func (h *Handle) guard() error {
	switch h.state.Load() {
	case stateReady:
		return nil
	case stateStopped:
		return ErrStopped
	default:
		return ErrNotReady
	}
}

// EmbedOne delegates a single text to the backend. Backend failures are
// wrapped as ErrBackend with the underlying message preserved.
func (h *Handle) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if err := h.guard(); err != nil {
		return nil, err
	}
	vec, err := h.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return vec, nil
}

// EmbedMany delegates a batch to the backend, preserving input order. It
// enforces no batch ceiling; that is the facade's rule.
func (h *Handle) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if err := h.guard(); err != nil {
		return nil, err
	}
	vecs, err := h.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return vecs, nil
}

// Teardown releases the backend reference. Idempotent; once Stopped no
// further embed calls are valid.
func (h *Handle) Teardown() {
	if h.state.CompareAndSwap(stateReady, stateStopped) {
		h.log.Info().Msg("embedding model released")
	}
}
