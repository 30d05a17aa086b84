package command

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// Supervisor is the error boundary around command actions. A failing
// or panicking action produces a rendered fallback instead of a
// crash.
type Supervisor interface {
	Run(render func() error) error
}

// recoverySupervisor logs failures, prints guidance for the known
// error taxonomy, and converts panics into errors.
type recoverySupervisor struct {
	logger logger.Logger
	stderr io.Writer
}

// NewSupervisor creates the standard supervisor. Guidance messages go
// to stderr.
func NewSupervisor(log logger.Logger, stderr io.Writer) Supervisor {
	if log == nil {
		log = logger.Default()
	}
	return &recoverySupervisor{logger: log, stderr: stderr}
}

// Run executes render. Panics are recovered and reported as errors;
// known failures get a guidance line before the error propagates.
func (s *recoverySupervisor) Run(render func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintln(s.stderr, "an internal error occurred; the command was aborted")
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	err = render()
	if err != nil {
		s.OnFailure(err)
	}
	return err
}

// OnFailure renders guidance for a failed action. The error itself is
// still reported by the caller; this only adds the human next step.
func (s *recoverySupervisor) OnFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		fmt.Fprintln(s.stderr, "you are not logged in; run 'attendctl login' first")
	case errors.Is(err, domain.ErrForbidden):
		fmt.Fprintln(s.stderr, "access restricted: your role does not allow this view")
	case errors.Is(err, domain.ErrAuthFailed):
		fmt.Fprintln(s.stderr, "login failed: check username and password")
	case errors.Is(err, domain.ErrNetwork):
		fmt.Fprintln(s.stderr, "backend unreachable: check the server address and try again")
	}
	s.logger.Debug("command failed", "error", err, "code", domain.GetErrorCode(err))
}
