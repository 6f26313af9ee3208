package output

import (
	"testing"
)

func TestHighlight(t *testing.T) {
	src := "{\n  \"number\": 7,\n  \"subject\": \"hello\"\n}"

	highlighted := Highlight("json", src)

	if len(highlighted) != 4 {
		t.Fatalf("expected 4 highlighted lines, got %d", len(highlighted))
	}
	if len(highlighted[1].Tokens) == 0 {
		t.Error("expected tokens in second line")
	}
	if highlighted[1].Plain() != `  "number": 7,` {
		t.Errorf("plain text mismatch: %q", highlighted[1].Plain())
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	highlighted := Highlight("not-a-language-xyz", "some content\nmore content")

	if len(highlighted) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(highlighted))
	}
	if highlighted[0].Plain() != "some content" {
		t.Errorf("expected plain passthrough, got %q", highlighted[0].Plain())
	}
	if highlighted[1].Render() != "more content" {
		t.Errorf("uncoloured token should render verbatim, got %q", highlighted[1].Render())
	}
}
