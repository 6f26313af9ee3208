// Package gerrit talks to a Gerrit server through its ssh command interface.
package gerrit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Runner executes a command and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandError is returned when a remote command fails.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed", strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Options configures a Session.
type Options struct {
	Host string
	Port int
	User string

	// DryRun prints every command to DryRunOut instead of running it.
	DryRun    bool
	DryRunOut io.Writer

	Runner Runner
	Logger *zap.Logger
}

// Session issues query and review commands against one server.
type Session struct {
	host   string
	port   int
	user   string
	dryRun bool
	out    io.Writer
	runner Runner
	log    *zap.Logger
}

// NewSession creates a Session. Nil collaborators get defaults.
func NewSession(opts Options) *Session {
	s := &Session{
		host:   opts.Host,
		port:   opts.Port,
		user:   opts.User,
		dryRun: opts.DryRun,
		out:    opts.DryRunOut,
		runner: opts.Runner,
		log:    opts.Logger,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.runner == nil {
		s.runner = ExecRunner{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// sshArgs returns the ssh invocation that prefixes every remote command.
func (s *Session) sshArgs(remote string) []string {
	target := s.host
	if s.user != "" {
		target = s.user + "@" + s.host
	}
	return []string{"ssh", target, "-p", strconv.Itoa(s.port), remote}
}

// run executes args, or prints them in dry-run mode.
func (s *Session) run(ctx context.Context, args []string) (string, error) {
	s.log.Debug("remote command", zap.Strings("args", args))

	if s.dryRun {
		fmt.Fprintln(s.out, strings.Join(args, " "))
		return "", nil
	}

	stdout, stderr, err := s.runner.Run(ctx, args[0], args[1:]...)
	if err != nil {
		cerr := &CommandError{Args: args, Stderr: string(stderr), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		s.log.Warn("remote command failed",
			zap.String("command", args[4]),
			zap.Int("exit", cerr.ExitCode),
			zap.String("stderr", strings.TrimSpace(cerr.Stderr)))
		return "", cerr
	}
	return string(stdout), nil
}
