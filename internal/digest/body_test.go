package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/dmelton/jobdigest/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBuildBody_EmptyInputIsExactlyBanner(t *testing.T) {
	if got := BuildBody(nil); got != Banner {
		t.Errorf("BuildBody(nil) = %q, want exactly the banner", got)
	}
	if got := BuildBody([]model.Posting{}); got != Banner {
		t.Errorf("BuildBody(empty) = %q, want exactly the banner", got)
	}
}

func TestBuildBody_FormatsFields(t *testing.T) {
	postings := []model.Posting{{
		ID:          "id1",
		Title:       "Go Engineer",
		Link:        "https://x/1",
		CompanyName: strPtr("Acme"),
		FitScore:    intPtr(8),
		Reasoning:   "Great match.",
	}}

	got := BuildBody(postings)
	if !strings.HasPrefix(got, Banner) {
		t.Error("body does not start with the banner")
	}
	for _, want := range []string{
		"Title: Go Engineer",
		"Company: Acme",
		"Fit Score: 8",
		"Reasoning: Great match.",
		"Link: https://x/1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("body missing %q:\n%s", want, got)
		}
	}
}

func TestBuildBody_UnknownSubstitution(t *testing.T) {
	postings := []model.Posting{{ID: "id1", Title: "Go Engineer", Link: "https://x/1"}}

	got := BuildBody(postings)
	for _, want := range []string{"Company: Unknown", "Fit Score: Unknown", "Reasoning: Unknown"} {
		if !strings.Contains(got, want) {
			t.Errorf("body missing %q:\n%s", want, got)
		}
	}
}

func TestBuildBody_MultiplePostings(t *testing.T) {
	postings := []model.Posting{
		{ID: "a", Title: "First", Link: "https://x/1"},
		{ID: "b", Title: "Second", Link: "https://x/2"},
	}

	got := BuildBody(postings)
	if strings.Count(got, "Title: ") != 2 {
		t.Errorf("expected 2 blocks, body:\n%s", got)
	}
	if strings.Index(got, "First") > strings.Index(got, "Second") {
		t.Error("postings out of order in body")
	}
}

func TestSubject_ContainsDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	want := "Top Job Recommendations for 2026-08-31"
	if got := Subject(now); got != want {
		t.Errorf("Subject = %q, want %q", got, want)
	}
}
