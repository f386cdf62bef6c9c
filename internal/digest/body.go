// Package digest formats stored postings into an email and delivers it via
// the Mailgun messages API.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmelton/jobdigest/internal/model"
)

// Banner opens every digest body. An empty selection produces exactly this
// string.
const Banner = "Here are the top job recommendations:\n\n"

const unknown = "Unknown"

// BuildBody renders the selected postings into the digest text. Missing
// fields render as "Unknown".
func BuildBody(postings []model.Posting) string {
	var b strings.Builder
	b.WriteString(Banner)

	for _, p := range postings {
		b.WriteString(fmt.Sprintf("Title: %s\n", orUnknown(p.Title)))
		b.WriteString(fmt.Sprintf("Company: %s\n", strOrUnknown(p.CompanyName)))
		b.WriteString(fmt.Sprintf("Fit Score: %s\n", scoreOrUnknown(p.FitScore)))
		b.WriteString(fmt.Sprintf("Reasoning: %s\n", orUnknown(p.Reasoning)))
		b.WriteString(fmt.Sprintf("Link: %s\n", orUnknown(p.Link)))
		b.WriteString("\n")
	}

	return b.String()
}

// Subject returns the digest subject line for the given day.
func Subject(now time.Time) string {
	return "Top Job Recommendations for " + now.Format("2006-01-02")
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func strOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknown
	}
	return *s
}

func scoreOrUnknown(i *int) string {
	if i == nil {
		return unknown
	}
	return fmt.Sprintf("%d", *i)
}
