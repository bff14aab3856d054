package httpreq

import (
	"context"
	"sync"
)

// State is the render-time snapshot of a Hook.
type State[T any] struct {
	Data    *T
	Text    string
	Loading bool
	Err     error
}

// Message returns the user-facing error message, or "".
func (s State[T]) Message() string {
	return Message(s.Err)
}

// Hook tracks the lifecycle (idle → loading → success|error) of one request at a time.
// A new Send restarts the lifecycle; a call overtaken by a newer one never writes state.
type Hook[T any] struct {
	client *Client

	mu    sync.Mutex
	gen   uint64
	state State[T]
}

// NewHook creates an idle Hook bound to client.
func NewHook[T any](client *Client) *Hook[T] {
	return &Hook[T]{client: client}
}

// Send issues req and records the outcome. The returned error is the same error
// stored in the state.
func (h *Hook[T]) Send(ctx context.Context, req Request) error {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.state.Loading = true
	h.state.Err = nil
	h.mu.Unlock()

	resp, err := h.client.Do(ctx, req)

	var (
		data T
		text string
		has  bool
	)
	if err == nil {
		if resp.Structured() {
			if decErr := resp.Decode(&data); decErr != nil {
				err = decErr
			} else {
				has = len(resp.Body) > 0
			}
		} else {
			text = string(resp.Body)
			if s, ok := any(&data).(*string); ok {
				*s = text
				has = true
			}
		}
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		return err
	}
	h.state.Loading = false
	h.state.Err = err
	if err == nil {
		h.state.Text = text
		if has {
			h.state.Data = &data
		} else {
			h.state.Data = nil
		}
	}
	return err
}

// State returns a snapshot of the current state.
func (h *Hook[T]) State() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Reset returns the hook to its initial state and invalidates in-flight calls.
func (h *Hook[T]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	h.state = State[T]{}
}
