// Package store persists built event graphs to SQLite and indexes their
// event text for full-text search.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kotonoha/eventgraph"
)

// Config holds the store's tunables. Zero values get defaults in New.
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = 30 * time.Second
	}
}

// Document represents a row in the documents table.
type Document struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SentenceCount int    `json:"sentence_count"`
	EventCount    int    `json:"event_count"`
	RelationCount int    `json:"relation_count"`
	CreatedAt     string `json:"created_at"`
}

// Sentence represents a row in the sentences table.
type Sentence struct {
	DocumentID int64  `json:"document_id"`
	SSID       int    `json:"ssid"`
	SID        string `json:"sid"`
	Surf       string `json:"surf"`
	Mrphs      string `json:"mrphs"`
	Reps       string `json:"reps"`
}

// Event represents a row in the events table. EventID is the graph-local
// event ID; ID is the database row ID.
type Event struct {
	ID             int64               `json:"id"`
	DocumentID     int64               `json:"document_id"`
	EventID        int                 `json:"event_id"`
	SSID           int                 `json:"ssid"`
	ParentEventID  int                 `json:"parent_event_id"`
	Surf           string              `json:"surf"`
	SurfWithMark   string              `json:"surf_with_mark"`
	NormalizedSurf string              `json:"normalized_surf"`
	Mrphs          string              `json:"mrphs"`
	Reps           string              `json:"reps"`
	NormalizedReps string              `json:"normalized_reps"`
	ContentReps    []string            `json:"content_reps"`
	Predicate      string              `json:"predicate"`
	PredicateType  string              `json:"predicate_type"`
	Features       eventgraph.Features `json:"features"`
}

// Relation represents a row in the relations table. Event IDs are
// graph-local.
type Relation struct {
	ID              int64  `json:"id"`
	DocumentID      int64  `json:"document_id"`
	ModifierEventID int    `json:"modifier_event_id"`
	HeadEventID     int    `json:"head_event_id"`
	Label           string `json:"label"`
	Surf            string `json:"surf"`
	Reliable        bool   `json:"reliable"`
}

// SearchResult holds an event matched by full-text search with its rank.
type SearchResult struct {
	Event
	DocumentName string  `json:"document_name"`
	Score        float64 `json:"score"`
}

// Store wraps the SQLite database for event graph persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and initialises
// the schema including the FTS5 virtual table.
func New(dbPath string, cfg Config) (*Store, error) {
	cfg.applyDefaults()

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d",
		dbPath, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s := &Store{db: db}

	// Run pending migrations.
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// --- Graph ingestion ---

// InsertGraph stores a built event graph under the given document name in
// one transaction. Returns the document ID.
func (s *Store) InsertGraph(ctx context.Context, name string, g *eventgraph.EventGraph) (int64, error) {
	sentences := g.Sentences()
	events := g.Events()
	relations := g.Relations()

	var docID int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO documents (name, sentence_count, event_count, relation_count)
			VALUES (?, ?, ?, ?)
		`, name, len(sentences), len(events), len(relations))
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		docID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, sent := range sentences {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO sentences (document_id, ssid, sid, surf, mrphs, reps)
				VALUES (?, ?, ?, ?, ?, ?)
			`, docID, sent.SSID, sent.SID, sent.Surf, sent.Mrphs, sent.Reps); err != nil {
				return fmt.Errorf("inserting sentence %d: %w", sent.SSID, err)
			}
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO events (document_id, event_id, ssid, parent_event_id,
				surf, surf_with_mark, normalized_surf, mrphs, reps, normalized_reps,
				content_reps, predicate, predicate_type, features)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range events {
			contentReps, err := json.Marshal(e.ContentRepList)
			if err != nil {
				return fmt.Errorf("encoding content reps of event %d: %w", e.ID, err)
			}
			features, err := json.Marshal(e.Features)
			if err != nil {
				return fmt.Errorf("encoding features of event %d: %w", e.ID, err)
			}
			if _, err := stmt.ExecContext(ctx,
				docID, e.ID, e.SSID, e.ParentID,
				e.Surf, e.SurfWithMark, e.NormalizedSurf, e.Mrphs, e.Reps, e.NormalizedReps,
				string(contentReps), e.PAS.Predicate.NormalizedSurf, e.PAS.Predicate.Type,
				string(features)); err != nil {
				return fmt.Errorf("inserting event %d: %w", e.ID, err)
			}
		}

		for _, r := range relations {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO relations (document_id, modifier_event_id, head_event_id, label, surf, reliable)
				VALUES (?, ?, ?, ?, ?, ?)
			`, docID, r.Modifier.ID, r.Head.ID, string(r.Label), r.Surface, r.Reliable); err != nil {
				return fmt.Errorf("inserting relation %d->%d: %w", r.Modifier.ID, r.Head.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return docID, nil
}

// --- Document operations ---

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	doc := &Document{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, sentence_count, event_count, relation_count, created_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.SentenceCount, &doc.EventCount,
		&doc.RelationCount, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocumentByName retrieves a document by its name.
func (s *Store) GetDocumentByName(ctx context.Context, name string) (*Document, error) {
	doc := &Document{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, sentence_count, event_count, relation_count, created_at
		FROM documents WHERE name = ?
	`, name).Scan(&doc.ID, &doc.Name, &doc.SentenceCount, &doc.EventCount,
		&doc.RelationCount, &doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all documents ordered by creation time.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sentence_count, event_count, relation_count, created_at
		FROM documents ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Name, &d.SentenceCount, &d.EventCount,
			&d.RelationCount, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and cascades to all related data. The
// FTS triggers clean up the index.
func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Explicit event delete so the FTS delete triggers fire before the
		// cascade.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM events WHERE document_id = ?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE id = ?", id); err != nil {
			return err
		}
		return nil
	})
}

// --- Sentence operations ---

// ListSentences returns a document's sentences in order.
func (s *Store) ListSentences(ctx context.Context, docID int64) ([]Sentence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, ssid, sid, surf, mrphs, reps
		FROM sentences WHERE document_id = ? ORDER BY ssid
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sents []Sentence
	for rows.Next() {
		var sent Sentence
		if err := rows.Scan(&sent.DocumentID, &sent.SSID, &sent.SID,
			&sent.Surf, &sent.Mrphs, &sent.Reps); err != nil {
			return nil, err
		}
		sents = append(sents, sent)
	}
	return sents, rows.Err()
}

// --- Event operations ---

const eventColumns = `id, document_id, event_id, ssid, parent_event_id,
	surf, surf_with_mark, normalized_surf, mrphs, reps, normalized_reps,
	content_reps, predicate, predicate_type, features`

func scanEvent(scan func(dest ...any) error) (Event, error) {
	var e Event
	var contentReps, features string
	err := scan(&e.ID, &e.DocumentID, &e.EventID, &e.SSID, &e.ParentEventID,
		&e.Surf, &e.SurfWithMark, &e.NormalizedSurf, &e.Mrphs, &e.Reps, &e.NormalizedReps,
		&contentReps, &e.Predicate, &e.PredicateType, &features)
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal([]byte(contentReps), &e.ContentReps); err != nil {
		return e, fmt.Errorf("decoding content reps of event row %d: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(features), &e.Features); err != nil {
		return e, fmt.Errorf("decoding features of event row %d: %w", e.ID, err)
	}
	return e, nil
}

// ListEvents returns a document's events in graph order.
func (s *Store) ListEvents(ctx context.Context, docID int64) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE document_id = ? ORDER BY event_id", docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent retrieves one event by document and graph-local event ID.
func (s *Store) GetEvent(ctx context.Context, docID int64, eventID int) (*Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE document_id = ? AND event_id = ?",
		docID, eventID)
	e, err := scanEvent(row.Scan)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SearchEvents performs a full-text search over event surfaces using FTS5
// BM25 ranking.
func (s *Store) SearchEvents(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`, d.name, f.rank
		FROM events_fts f
		JOIN events ON events.id = f.rowid
		JOIN documents d ON d.id = events.document_id
		WHERE events_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var contentReps, features string
		var rank float64
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.EventID, &r.SSID, &r.ParentEventID,
			&r.Surf, &r.SurfWithMark, &r.NormalizedSurf, &r.Mrphs, &r.Reps, &r.NormalizedReps,
			&contentReps, &r.Predicate, &r.PredicateType, &features,
			&r.DocumentName, &rank); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(contentReps), &r.ContentReps); err != nil {
			return nil, fmt.Errorf("decoding content reps of event row %d: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(features), &r.Features); err != nil {
			return nil, fmt.Errorf("decoding features of event row %d: %w", r.ID, err)
		}
		// FTS5 rank is negative (lower = better), convert to positive score
		r.Score = -rank
		results = append(results, r)
	}
	return results, rows.Err()
}

// --- Relation operations ---

// ListRelations returns a document's relations in insertion order.
func (s *Store) ListRelations(ctx context.Context, docID int64) ([]Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, modifier_event_id, head_event_id, label, surf, reliable
		FROM relations WHERE document_id = ? ORDER BY id
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRelations(rows)
}

// Relations returns the relations touching one event, both directions.
func (s *Store) Relations(ctx context.Context, docID int64, eventID int) ([]Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, modifier_event_id, head_event_id, label, surf, reliable
		FROM relations
		WHERE document_id = ? AND (modifier_event_id = ? OR head_event_id = ?)
		ORDER BY id
	`, docID, eventID, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRelations(rows)
}

func collectRelations(rows *sql.Rows) ([]Relation, error) {
	var rels []Relation
	for rows.Next() {
		var r Relation
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.ModifierEventID,
			&r.HeadEventID, &r.Label, &r.Surf, &r.Reliable); err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
