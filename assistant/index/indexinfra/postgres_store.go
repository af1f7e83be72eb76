package indexinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

const postgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS resume_indexes (
	session_id      TEXT PRIMARY KEY,
	model           TEXT NOT NULL,
	dimension       INT NOT NULL,
	document_name   TEXT NOT NULL,
	document_format TEXT NOT NULL,
	document_text   TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS resume_chunks (
	session_id    TEXT NOT NULL REFERENCES resume_indexes(session_id) ON DELETE CASCADE,
	seq           INT NOT NULL,
	chunk_id      TEXT NOT NULL,
	content       TEXT NOT NULL,
	source_offset INT NOT NULL,
	embedding     vector NOT NULL,
	PRIMARY KEY (session_id, seq)
);`

// PostgresStore keeps indexes in Postgres with pgvector columns
type PostgresStore struct {
	db *sqlx.DB
}

var _ index.Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ============================================================================
// Database Models
// ============================================================================

type indexRow struct {
	SessionID      string    `db:"session_id"`
	Model          string    `db:"model"`
	Dimension      int       `db:"dimension"`
	DocumentName   string    `db:"document_name"`
	DocumentFormat string    `db:"document_format"`
	DocumentText   string    `db:"document_text"`
	CreatedAt      time.Time `db:"created_at"`
}

type chunkRow struct {
	Seq          int             `db:"seq"`
	ChunkID      string          `db:"chunk_id"`
	Content      string          `db:"content"`
	SourceOffset int             `db:"source_offset"`
	Embedding    pgvector.Vector `db:"embedding"`
}

func (r *indexRow) toDomain(chunks []chunkRow) *index.Index {
	idx := &index.Index{
		SessionID: kernel.NewSessionID(r.SessionID),
		Model:     r.Model,
		Dimension: r.Dimension,
		Document: index.Source{
			Name:   r.DocumentName,
			Format: document.Format(r.DocumentFormat),
			Text:   r.DocumentText,
		},
		Entries:   make([]index.Entry, len(chunks)),
		CreatedAt: r.CreatedAt,
	}
	for i, c := range chunks {
		idx.Entries[i] = index.Entry{
			Chunk: document.Chunk{
				ID:           kernel.NewChunkID(c.ChunkID),
				Seq:          c.Seq,
				Text:         c.Content,
				SourceOffset: c.SourceOffset,
			},
			Vector: c.Embedding.Slice(),
		}
	}
	return idx
}

// ============================================================================
// Operations
// ============================================================================

// EnsureSchema creates the extension and tables when missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("ensure vector store schema: %w", err)
	}
	return nil
}

// Save replaces the session's rows in one transaction
func (s *PostgresStore) Save(ctx context.Context, idx *index.Index) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resume_indexes WHERE session_id = $1`, idx.SessionID); err != nil {
		return fmt.Errorf("delete previous index: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO resume_indexes (
			session_id, model, dimension, document_name, document_format, document_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		idx.SessionID, idx.Model, idx.Dimension,
		idx.Document.Name, idx.Document.Format, idx.Document.Text, idx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert index: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO resume_chunks (session_id, seq, chunk_id, content, source_offset, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range idx.Entries {
		_, err := stmt.ExecContext(ctx,
			idx.SessionID, e.Chunk.Seq, e.Chunk.ID, e.Chunk.Text, e.Chunk.SourceOffset,
			pgvector.NewVector(e.Vector),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", e.Chunk.ID, err)
		}
	}

	return tx.Commit()
}

// Load reads header and chunks from one snapshot
func (s *PostgresStore) Load(ctx context.Context, id kernel.SessionID) (*index.Index, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row indexRow
	err = tx.GetContext(ctx, &row, `
		SELECT session_id, model, dimension, document_name, document_format, document_text, created_at
		FROM resume_indexes
		WHERE session_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, index.ErrIndexNotFound().WithDetail("session_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select index: %w", err)
	}

	var chunks []chunkRow
	err = tx.SelectContext(ctx, &chunks, `
		SELECT seq, chunk_id, content, source_offset, embedding
		FROM resume_chunks
		WHERE session_id = $1
		ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("select chunks: %w", err)
	}

	idx := row.toDomain(chunks)
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id kernel.SessionID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM resume_indexes WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
