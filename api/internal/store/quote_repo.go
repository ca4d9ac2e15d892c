package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// QuoteRepo caches raw model answers so re-quoting the same upload skips the
// paid model call. Keyed by (file_hash, op, engine, model).
type QuoteRepo struct{ DB *sql.DB }

func NewQuoteRepo(db *sql.DB) *QuoteRepo { return &QuoteRepo{DB: db} }

type AnswerRow struct {
	ID        int64
	CreatedAt time.Time
	FileHash  string
	Op        string // "drawing" | "sheet" | "ingot"
	Engine    string
	Model     string
	Answer    json.RawMessage
}

// Schema reference (migrations run out-of-band):
//
//	create table if not exists quote_answers (
//	  id bigserial primary key,
//	  created_at timestamptz not null default now(),
//	  file_hash text not null,
//	  op text not null,
//	  engine text not null,
//	  model text not null,
//	  answer_json jsonb not null,
//	  unique (file_hash, op, engine, model)
//	);

// FindByHash returns the freshest cached answer for the key. If maxAge > 0
// stale rows are treated as missing.
func (r *QuoteRepo) FindByHash(ctx context.Context, fileHash, op, engine, model string, maxAge time.Duration) (*AnswerRow, error) {
	const q = `
select id, created_at, file_hash, op, engine, model, answer_json
from quote_answers
where file_hash = $1 and op = $2 and engine = $3 and model = $4
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, fileHash, op, engine, model)

	var out AnswerRow
	var js []byte
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.FileHash, &out.Op, &out.Engine, &out.Model, &js); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(out.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	if !json.Valid(js) {
		return nil, ErrNotFound
	}
	out.Answer = js
	return &out, nil
}

// Upsert stores the model answer, replacing any previous one for the key.
func (r *QuoteRepo) Upsert(ctx context.Context, fileHash, op, engine, model string, answer any) error {
	js, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	const q = `
insert into quote_answers (file_hash, op, engine, model, answer_json)
values ($1,$2,$3,$4,$5)
on conflict (file_hash, op, engine, model) do update
set answer_json = excluded.answer_json,
    created_at = now()`
	_, err = r.DB.ExecContext(ctx, q, fileHash, op, engine, model, js)
	return err
}

// PurgeOlderThan drops very old cache rows so the table does not grow
// unbounded.
func (r *QuoteRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from quote_answers where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
