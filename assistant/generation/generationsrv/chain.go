package generationsrv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// Chain tries each backend once, in order, and returns the first usable
// completion. There are no retries beyond moving to the next backend.
type Chain struct {
	backends []generation.Backend
	timeout  time.Duration
}

var _ generation.Generator = (*Chain)(nil)

// NewChain builds a chain; a zero timeout leaves calls bounded only by ctx
func NewChain(timeout time.Duration, backends ...generation.Backend) *Chain {
	return &Chain{
		backends: backends,
		timeout:  timeout,
	}
}

// Backends returns the backend names in the order they are tried
func (c *Chain) Backends() []string {
	names := make([]string, len(c.backends))
	for i, b := range c.backends {
		names[i] = b.Name()
	}
	return names
}

// Complete returns the first non-empty completion. Options.Model applies to
// the first backend only; fallbacks use their configured model.
func (c *Chain) Complete(ctx context.Context, prompt string, opts generation.Options) (string, error) {
	if len(c.backends) == 0 {
		return "", generation.ErrUnavailable().WithDetail("reason", "no generation backend configured")
	}

	failures := make([]map[string]string, 0, len(c.backends))
	for i, b := range c.backends {
		callOpts := opts
		if i > 0 {
			callOpts.Model = ""
		}

		text, err := c.call(ctx, b, prompt, callOpts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if err == nil && strings.TrimSpace(text) != "" {
			if i > 0 {
				logx.Infof("Generation served by fallback backend %s", b.Name())
			}
			return strings.TrimSpace(text), nil
		}

		if err == nil {
			err = errors.New("empty response")
		}
		failures = append(failures, map[string]string{"backend": b.Name(), "error": err.Error()})

		if i+1 < len(c.backends) {
			logx.Warnf("Backend %s failed, falling back to %s: %v", b.Name(), c.backends[i+1].Name(), err)
		} else {
			logx.Errorf("Backend %s failed, no backends left: %v", b.Name(), err)
		}
	}

	return "", generation.ErrUnavailable().WithDetail("failures", failures)
}

func (c *Chain) call(ctx context.Context, b generation.Backend, prompt string, opts generation.Options) (string, error) {
	if c.timeout <= 0 {
		return b.Complete(ctx, prompt, opts)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return b.Complete(callCtx, prompt, opts)
}
