package store

import (
	"context"

	"github.com/dmelton/jobdigest/internal/model"
)

// NopPostingStore discards writes and returns nothing. Used by check mode.
type NopPostingStore struct{}

var _ model.PostingStore = (*NopPostingStore)(nil)

func NewNopPostingStore() *NopPostingStore { return &NopPostingStore{} }

func (*NopPostingStore) Upsert(ctx context.Context, source string, p model.Posting) error {
	return nil
}

func (*NopPostingStore) TopByFit(ctx context.Context, source string, n int) ([]model.Posting, error) {
	return nil, nil
}
