package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/stemd-dev/stemd/internal/domain"
)

// Invoker shells out to the separation tool and waits for it. One call,
// one child process; concurrent calls share nothing.
type Invoker struct {
	interpreter string
	script      string
	timeout     time.Duration // zero waits forever
}

func New(interpreter, script string, timeout time.Duration) *Invoker {
	return &Invoker{interpreter: interpreter, script: script, timeout: timeout}
}

// capture keeps one combined stdout+stderr buffer in arrival order while
// also tracking stderr alone. exec copies the two streams from separate
// goroutines, so writes are serialized here.
type capture struct {
	mu       sync.Mutex
	combined bytes.Buffer
	stderr   bytes.Buffer
}

type streamWriter struct {
	c        *capture
	isStderr bool
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	if w.isStderr {
		w.c.stderr.Write(p)
	}
	return w.c.combined.Write(p)
}

func (inv *Invoker) Invoke(ctx context.Context, req domain.Request) (*domain.Result, error) {
	argv, err := BuildCommand(inv.interpreter, inv.script, req)
	if err != nil {
		return nil, err
	}

	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	streams := &capture{}
	cmd.Stdout = &streamWriter{c: streams}
	cmd.Stderr = &streamWriter{c: streams, isStderr: true}

	runErr := cmd.Run()

	res := &domain.Result{
		Command: argv,
		Output:  streams.combined.String(),
		Stderr:  streams.stderr.String(),
	}

	if runErr == nil {
		res.Status = domain.StatusSuccess
		if res.Stderr != "" {
			res.Status = domain.StatusWarnings
		}
		return res, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// Process never started: bad interpreter or script path.
		return nil, fmt.Errorf("launch failure: %w", runErr)
	}

	res.Status = domain.StatusToolFailure
	res.ExitCode = exitErr.ExitCode()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Output += fmt.Sprintf("\ntool failure: timeout after %s\n", inv.timeout)
	}
	return res, nil
}
