package filter

import (
	"strings"

	"github.com/dmelton/jobdigest/internal/model"
)

// TitleFilter matches postings whose title contains any include keyword and
// none of the exclude keywords. Matching is case-insensitive substring.
// Empty keyword lists are treated as "match all".
type TitleFilter struct {
	keywords []string
	excludes []string
}

var _ model.PostingFilter = (*TitleFilter)(nil)

// NewTitleFilter returns a filter over posting titles.
func NewTitleFilter(keywords, excludes []string) *TitleFilter {
	return &TitleFilter{
		keywords: keywords,
		excludes: excludes,
	}
}

// Match reports whether the posting passes the keyword filter.
func (f *TitleFilter) Match(p model.Posting) bool {
	titleLower := strings.ToLower(p.Title)

	for _, kw := range f.excludes {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			return false
		}
	}

	if len(f.keywords) == 0 {
		return true
	}
	for _, kw := range f.keywords {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
