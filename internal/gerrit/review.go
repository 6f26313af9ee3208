package gerrit

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Action is the state change requested alongside a review.
type Action int

const (
	ActionNone Action = iota
	ActionAbandon
	ActionRestore
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAbandon:
		return "abandon"
	case ActionRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// ReviewRequest is one review command against a single patch set.
type ReviewRequest struct {
	Commit     string
	Message    []string // words, joined with single spaces
	CodeReview *int
	Workflow   *int
	Action     Action
}

// ReviewArgs builds the full command line for a review.
func (s *Session) ReviewArgs(req ReviewRequest) []string {
	args := s.sshArgs("gerrit review")

	msg := strings.Join(req.Message, " ")
	if strings.Contains(msg, " ") {
		args = append(args, "--message "+shellQuote(msg))
	} else {
		args = append(args, "--message "+msg)
	}

	if req.CodeReview != nil {
		args = append(args, "--code-review", Score(*req.CodeReview))
	}
	if req.Workflow != nil {
		args = append(args, "--workflow", Score(*req.Workflow))
	}

	switch req.Action {
	case ActionAbandon:
		args = append(args, "--abandon")
	case ActionRestore:
		args = append(args, "--restore")
	}

	return append(args, req.Commit)
}

// Review posts a review. In dry-run mode the command is only printed.
func (s *Session) Review(ctx context.Context, req ReviewRequest) error {
	s.log.Info("review",
		zap.String("commit", req.Commit),
		zap.Stringer("action", req.Action))
	_, err := s.run(ctx, s.ReviewArgs(req))
	return err
}

// Score formats a vote the way the server prints it: "+1", "0", "-2".
func Score(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// shellQuote wraps s in single quotes for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
