// Package store persists enriched postings, one table per feed source,
// keyed by the identity digest with replace-on-conflict semantics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dmelton/jobdigest/internal/model"
)

// Open opens (or creates) the SQLite database at path and verifies the
// connection. The returned handle is shared by the ledger and the store.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	return db, nil
}

var sourceNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// SQLitePostingStore writes postings into per-source tables named
// postings_<source>.
type SQLitePostingStore struct {
	db *sql.DB

	mu      sync.Mutex
	created map[string]bool // sources whose table already exists
}

var _ model.PostingStore = (*SQLitePostingStore)(nil)

// NewSQLitePostingStore wraps an open database handle.
func NewSQLitePostingStore(db *sql.DB) *SQLitePostingStore {
	return &SQLitePostingStore{
		db:      db,
		created: make(map[string]bool),
	}
}

// tableFor validates the source name and ensures its table exists. Source
// names come from config, not feeds, but they are interpolated into SQL so
// they are restricted to identifier characters.
func (s *SQLitePostingStore) tableFor(ctx context.Context, source string) (string, error) {
	if !sourceNameRe.MatchString(source) {
		return "", fmt.Errorf("invalid source name %q", source)
	}
	table := "postings_" + source

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created[source] {
		return table, nil
	}

	createTable := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id           TEXT PRIMARY KEY,
		title        TEXT,
		summary      TEXT,
		link         TEXT,
		published_at TEXT,
		created_at   DATETIME,
		company_name TEXT,
		fit_score    INTEGER,
		reasoning    TEXT
	)`, table)
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return "", fmt.Errorf("creating table %s: %w", table, err)
	}
	s.created[source] = true
	return table, nil
}

// Upsert inserts the posting or, if its ID already exists, overwrites every
// non-key column. Repeated calls with overlapping IDs never duplicate rows.
func (s *SQLitePostingStore) Upsert(ctx context.Context, source string, p model.Posting) error {
	table, err := s.tableFor(ctx, source)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		id, title, summary, link, published_at, created_at,
		company_name, fit_score, reasoning
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		title = excluded.title,
		summary = excluded.summary,
		link = excluded.link,
		published_at = excluded.published_at,
		created_at = excluded.created_at,
		company_name = excluded.company_name,
		fit_score = excluded.fit_score,
		reasoning = excluded.reasoning`, table)

	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Summary, p.Link, p.PublishedAt, p.FetchedAt,
		nullString(p.CompanyName), nullInt(p.FitScore), p.Reasoning,
	)
	if err != nil {
		return fmt.Errorf("upserting posting %s into %s: %w", p.ID, table, err)
	}
	return nil
}

// TopByFit returns up to n postings for source ordered by fit score
// descending, unscored postings last. A source that was never written
// yields an empty result.
func (s *SQLitePostingStore) TopByFit(ctx context.Context, source string, n int) ([]model.Posting, error) {
	table, err := s.tableFor(ctx, source)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, title, summary, link, published_at,
		created_at, company_name, fit_score, reasoning
	FROM %s
	ORDER BY fit_score IS NULL, fit_score DESC
	LIMIT ?`, table)

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("querying top postings from %s: %w", table, err)
	}
	defer rows.Close()

	var postings []model.Posting
	for rows.Next() {
		var p model.Posting
		var company sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Summary, &p.Link, &p.PublishedAt,
			&p.FetchedAt, &company, &score, &p.Reasoning,
		); err != nil {
			return nil, fmt.Errorf("scanning posting row: %w", err)
		}
		if company.Valid {
			p.CompanyName = &company.String
		}
		if score.Valid {
			v := int(score.Int64)
			p.FitScore = &v
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posting rows: %w", err)
	}
	return postings, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
