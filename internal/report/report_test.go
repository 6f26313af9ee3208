package report

import (
	"strings"
	"testing"
	"time"

	"github.com/sprite-ai/gerrit-cli/internal/alias"
	"github.com/sprite-ai/gerrit-cli/internal/model"
	"github.com/stretchr/testify/require"
)

const threeChanges = `{"number": "1", "project": "abc", "owner": {"name": "abc", "username": "pqr", "email": "abc@pqr"}, "subject": "subject1", "lastUpdated": "199"}
{"number": "2", "project": "def", "owner": {"name": "def", "username": "def", "email": "abc@pqr"}, "subject": "subject2", "lastUpdated": "199"}
{"number": "3", "project": "ghi", "owner": {"name": "ghi", "username": "pqr", "email": "abc@pqr"}, "subject": "subject3", "lastUpdated": "198"}
{"type": "stats", "rowCount": 3, "runTimeMilliseconds": 12}
`

func TestParse(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		got, err := Parse(`{"number": "1"}` + "\n" + `{"rowCount": "1"}`)
		require.NoError(t, err)
		require.Equal(t, []model.Review{{"number": "1"}}, got)
	})

	t.Run("order and extra fields", func(t *testing.T) {
		got, err := Parse(strings.Join([]string{
			`{"number": "1"}`,
			`{"number": "2", "pqr": "stu"}`,
			`{"rowCount": "2"}`,
		}, "\n"))
		require.NoError(t, err)
		require.Equal(t, []model.Review{{"number": "1"}, {"number": "2", "pqr": "stu"}}, got)
	})

	t.Run("blank lines", func(t *testing.T) {
		got, err := Parse("\n\n" + `{"number": "7"}` + "\r\n\n" + `{"rowCount": 1}` + "\n")
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Parse("")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestParseRowCountMismatch(t *testing.T) {
	cases := map[string]string{
		"too few":        `{"number": "1"}` + "\n" + `{"number": "2"}` + "\n" + `{"rowCount": "3"}`,
		"too many":       `{"number": "1"}` + "\n" + `{"number": "2"}` + "\n" + `{"rowCount": 1}`,
		"missing stats":  `{"number": "1"}`,
		"stats no rows":  `{"rowCount": 2}`,
		"zero announced": `{"number": "1"}` + "\n" + `{"rowCount": 0}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			require.ErrorIs(t, err, model.ErrDataIntegrity)
		})
	}
}

func TestParseProtocolErrors(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"number": `,
		"bad rowcount": `{"rowCount": "many"}`,
		"server error": `{"type": "error", "message": "permission denied"}`,
		"two records":  `{"number": "1"} {"number": "2"} junk` + "\n" + `{"rowCount": 1}`,
		"trailing":     `{"number": "1"}}` + "\n" + `{"rowCount": 1}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			require.ErrorIs(t, err, model.ErrProtocol)
		})
	}
}

func TestGenerate(t *testing.T) {
	now := time.Unix(200, 0)
	cols := []model.Column{
		model.NewColumn("number", model.AlignRight, 0),
	}

	rep, err := Generate(now, threeChanges, cols)
	require.NoError(t, err)
	require.Equal(t, []Row{{int64(1)}, {int64(2)}, {int64(3)}}, rep.Rows)
	require.Equal(t, cols, rep.Columns)
	require.Len(t, rep.Reviews, 3)

	cols = append(cols, model.NewColumn("age", model.AlignRight, 0))
	rep, err = Generate(now, threeChanges, cols)
	require.NoError(t, err)
	require.Equal(t, []Row{{int64(1), "1s"}, {int64(2), "1s"}, {int64(3), "2s"}}, rep.Rows)
}

func TestGenerateDefaultColumns(t *testing.T) {
	cols, err := alias.CompileColumns(nil, nil, nil)
	require.NoError(t, err)

	rep, err := Generate(time.Unix(200, 0), threeChanges, cols)
	require.NoError(t, err)

	age := rep.Index("age")
	require.NotEqual(t, -1, age)
	var ages []any
	for _, row := range rep.Rows {
		ages = append(ages, row[age])
	}
	require.Equal(t, []any{"1s", "1s", "2s"}, ages)
	require.Equal(t, Row{int64(2), "def", "def", "subject2", "1s"}, rep.Rows[1])
}

func TestGenerateErrors(t *testing.T) {
	cols := []model.Column{model.NewColumn("owner", model.AlignLeft, 0)}

	_, err := Generate(time.Unix(200, 0), `{"number": "1"}`+"\n"+`{"rowCount": 1}`, cols)
	require.ErrorIs(t, err, model.ErrMissingField)

	_, err = Generate(time.Unix(200, 0), `{"number": "1"}`, cols)
	require.ErrorIs(t, err, model.ErrDataIntegrity)
}

func TestIndex(t *testing.T) {
	rep := &Report{Columns: []model.Column{
		model.NewColumn("number", model.AlignRight, 0),
		model.NewColumn("commitid", model.AlignLeft, 0),
	}}
	require.Equal(t, 1, rep.Index("commitid"))
	require.Equal(t, -1, rep.Index("patchset"))
}
