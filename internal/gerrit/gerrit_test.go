package gerrit

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []call
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func newTestSession(r Runner) *Session {
	return NewSession(Options{Host: "review.example.org", Port: 29418, Runner: r})
}

func intp(v int) *int { return &v }

func TestQueryArgs(t *testing.T) {
	s := newTestSession(nil)

	got := s.QueryArgs([]string{"owner:self", "status:open"}, DefaultQueryOptions())
	want := []string{
		"ssh", "review.example.org", "-p", "29418", "gerrit query", "--format=JSON",
		"--current-patch-set", "--patch-sets", "--all-approvals",
		"owner:self", "status:open",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QueryArgs mismatch (-want +got):\n%s", diff)
	}

	got = s.QueryArgs([]string{"is:starred"}, QueryOptions{Limit: 5, Files: true})
	want = []string{
		"ssh", "review.example.org", "-p", "29418", "gerrit query", "--format=JSON",
		"--files", "is:starred", "limit:5",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QueryArgs with limit mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryArgsUser(t *testing.T) {
	s := NewSession(Options{Host: "h", Port: 22, User: "jdoe"})
	got := s.QueryArgs(nil, QueryOptions{})
	if got[1] != "jdoe@h" || got[3] != "22" {
		t.Errorf("unexpected ssh target: %v", got)
	}
}

func TestQuery(t *testing.T) {
	r := &fakeRunner{stdout: `{"rowCount": 0}` + "\n"}
	s := newTestSession(r)

	out, err := s.Query(context.Background(), []string{"status:open"}, DefaultQueryOptions())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if out != r.stdout {
		t.Errorf("expected runner stdout, got %q", out)
	}
	if len(r.calls) != 1 || r.calls[0].name != "ssh" {
		t.Fatalf("expected a single ssh call, got %+v", r.calls)
	}
}

func TestQueryFailure(t *testing.T) {
	r := &fakeRunner{stderr: "Permission denied (publickey).\n", err: errors.New("exit status 255")}
	s := newTestSession(r)

	_, err := s.Query(context.Background(), []string{"status:open"}, DefaultQueryOptions())
	var cerr *CommandError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Permission denied") {
		t.Errorf("expected stderr in error, got %q", err.Error())
	}
	if !errors.Is(err, r.err) {
		t.Error("expected CommandError to unwrap to the runner error")
	}
}

func TestDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := &fakeRunner{stdout: "should not be used"}
	s := NewSession(Options{Host: "h", Port: 29418, DryRun: true, DryRunOut: &buf, Runner: r})

	out, err := s.Query(context.Background(), []string{"status:open"}, DefaultQueryOptions())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if out != "" {
		t.Errorf("dry-run query should return no output, got %q", out)
	}
	if err := s.Review(context.Background(), ReviewRequest{Commit: "abc", Message: []string{"recheck"}}); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("dry-run executed %d commands", len(r.calls))
	}

	want := "ssh h -p 29418 gerrit query --format=JSON --current-patch-set --patch-sets --all-approvals status:open\n" +
		"ssh h -p 29418 gerrit review --message recheck abc\n"
	if buf.String() != want {
		t.Errorf("dry-run output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestReviewArgs(t *testing.T) {
	s := newTestSession(nil)
	prefix := []string{"ssh", "review.example.org", "-p", "29418", "gerrit review"}

	tests := []struct {
		name string
		req  ReviewRequest
		want []string
	}{
		{
			name: "single word",
			req:  ReviewRequest{Commit: "c1", Message: []string{"recheck"}},
			want: []string{"--message recheck", "c1"},
		},
		{
			name: "multi word with votes",
			req: ReviewRequest{
				Commit:     "c2",
				Message:    []string{"looks", "good"},
				CodeReview: intp(2),
				Workflow:   intp(1),
			},
			want: []string{"--message 'looks good'", "--code-review", "+2", "--workflow", "+1", "c2"},
		},
		{
			name: "abandon with quote",
			req: ReviewRequest{
				Commit:     "c3",
				Message:    []string{"won't fix"},
				CodeReview: intp(0),
				Action:     ActionAbandon,
			},
			want: []string{`--message 'won'\''t fix'`, "--code-review", "0", "--abandon", "c3"},
		},
		{
			name: "restore negative",
			req: ReviewRequest{
				Commit:   "c4",
				Message:  []string{"back"},
				Workflow: intp(-1),
				Action:   ActionRestore,
			},
			want: []string{"--message back", "--workflow", "-1", "--restore", "c4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ReviewArgs(tt.req)
			if diff := cmp.Diff(append(prefix[:len(prefix):len(prefix)], tt.want...), got); diff != "" {
				t.Errorf("ReviewArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := map[int]string{-2: "-2", -1: "-1", 0: "0", 1: "+1", 2: "+2"}
	for v, want := range tests {
		if got := Score(v); got != want {
			t.Errorf("Score(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "none"},
		{ActionAbandon, "abandon"},
		{ActionRestore, "restore"},
		{Action(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
