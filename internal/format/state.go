package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sprite-ai/gerrit-cli/internal/model"
)

// Tally counts votes per value. Code-Review and Verified span -2..+2,
// Workflow spans -1..+1.
type Tally struct {
	CodeReview [5]int
	Workflow   [3]int
	Verified   [5]int
}

// Add records one approval. Rollcall votes are accepted and not counted.
func (t *Tally) Add(a model.Approval) error {
	switch a.Kind {
	case model.VoteCodeReview:
		return bump(t.CodeReview[:], a)
	case model.VoteVerified:
		return bump(t.Verified[:], a)
	case model.VoteWorkflow:
		return bump(t.Workflow[:], a)
	case model.VoteRollcall:
		return nil
	default:
		return fmt.Errorf("%w: unknown approval kind %d", model.ErrProtocol, a.Kind)
	}
}

func bump(buckets []int, a model.Approval) error {
	idx := a.Value + len(buckets)/2
	if idx < 0 || idx >= len(buckets) {
		return fmt.Errorf("%w: %s vote %d out of range", model.ErrProtocol, a.Kind, a.Value)
	}
	buckets[idx]++
	return nil
}

func (t Tally) String() string {
	return fmt.Sprintf("R:%s W:%s V:%s",
		buckets(t.CodeReview[:]), buckets(t.Workflow[:]), buckets(t.Verified[:]))
}

func buckets(b []int) string {
	s := make([]string, len(b))
	for i, n := range b {
		s[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(s, ",") + "]"
}

// State summarises the approvals on a current patch set value as decoded
// from the query output. Without approvals it renders "None".
func State(currentPatchSet any) (string, error) {
	cps, ok := currentPatchSet.(map[string]any)
	if !ok {
		return "None", nil
	}
	raw, ok := cps["approvals"].([]any)
	if !ok {
		return "None", nil
	}

	var t Tally
	for _, item := range raw {
		a, err := parseApproval(item)
		if err != nil {
			return "", err
		}
		if err := t.Add(a); err != nil {
			return "", err
		}
	}
	return t.String(), nil
}

func parseApproval(v any) (model.Approval, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return model.Approval{}, fmt.Errorf("%w: approval is %T, not an object", model.ErrProtocol, v)
	}
	kind, err := model.ParseVoteKind(model.ToString(obj["type"]))
	if err != nil {
		return model.Approval{}, err
	}
	if kind == model.VoteRollcall {
		return model.Approval{Kind: kind}, nil
	}
	value, err := model.ToInt(obj["value"])
	if err != nil {
		return model.Approval{}, fmt.Errorf("%w: %s vote: %v", model.ErrProtocol, kind, err)
	}
	return model.Approval{Kind: kind, Value: int(value)}, nil
}
