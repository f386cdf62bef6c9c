package filter

import (
	"testing"

	"github.com/dmelton/jobdigest/internal/model"
)

func posting(title string) model.Posting {
	return model.Posting{ID: "x", Title: title}
}

func TestMatch_EmptyListsMatchAll(t *testing.T) {
	f := NewTitleFilter(nil, nil)
	if !f.Match(posting("Anything At All")) {
		t.Error("empty filter should match every posting")
	}
}

func TestMatch_KeywordCaseInsensitive(t *testing.T) {
	f := NewTitleFilter([]string{"engineer"}, nil)

	if !f.Match(posting("Senior Software ENGINEER")) {
		t.Error("expected case-insensitive keyword match")
	}
	if f.Match(posting("Product Manager")) {
		t.Error("expected no match without keyword")
	}
}

func TestMatch_ExcludeWins(t *testing.T) {
	f := NewTitleFilter([]string{"engineer"}, []string{"staff"})

	if f.Match(posting("Staff Engineer")) {
		t.Error("exclude keyword should reject the posting")
	}
	if !f.Match(posting("Backend Engineer")) {
		t.Error("posting without exclude keyword should pass")
	}
}

func TestMatch_ExcludeWithoutIncludes(t *testing.T) {
	f := NewTitleFilter(nil, []string{"intern"})

	if f.Match(posting("Engineering Intern")) {
		t.Error("exclude should apply even with no include keywords")
	}
	if !f.Match(posting("Engineering Lead")) {
		t.Error("non-excluded posting should pass")
	}
}
