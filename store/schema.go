package store

// schemaSQL is the DDL for all tables.
const schemaSQL = `
-- Document registry: one row per built event graph
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    sentence_count INTEGER NOT NULL,
    event_count INTEGER NOT NULL,
    relation_count INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sentences (
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    ssid INTEGER NOT NULL,
    sid TEXT NOT NULL,
    surf TEXT NOT NULL,
    mrphs TEXT NOT NULL,
    reps TEXT NOT NULL,
    PRIMARY KEY (document_id, ssid)
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    event_id INTEGER NOT NULL,
    ssid INTEGER NOT NULL,
    parent_event_id INTEGER NOT NULL,
    surf TEXT NOT NULL,
    surf_with_mark TEXT NOT NULL,
    normalized_surf TEXT NOT NULL,
    mrphs TEXT NOT NULL,
    reps TEXT NOT NULL,
    normalized_reps TEXT NOT NULL,
    content_reps JSON NOT NULL,
    predicate TEXT NOT NULL,
    predicate_type TEXT NOT NULL,
    features JSON NOT NULL,
    UNIQUE (document_id, event_id)
);

CREATE TABLE IF NOT EXISTS relations (
    id INTEGER PRIMARY KEY,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    modifier_event_id INTEGER NOT NULL,
    head_event_id INTEGER NOT NULL,
    label TEXT NOT NULL,
    surf TEXT NOT NULL,
    reliable INTEGER NOT NULL DEFAULT 0
);

-- Full-text search via FTS5. Trigram tokenization: the indexed text is
-- CJK without word boundaries.
CREATE VIRTUAL TABLE IF NOT EXISTS events_fts USING fts5(
    surf,
    normalized_surf,
    content='events',
    content_rowid='id',
    tokenize='trigram'
);

-- FTS triggers to keep index in sync
CREATE TRIGGER IF NOT EXISTS events_ai AFTER INSERT ON events BEGIN
    INSERT INTO events_fts(rowid, surf, normalized_surf) VALUES (new.id, new.surf, new.normalized_surf);
END;
CREATE TRIGGER IF NOT EXISTS events_ad AFTER DELETE ON events BEGIN
    INSERT INTO events_fts(events_fts, rowid, surf, normalized_surf) VALUES ('delete', old.id, old.surf, old.normalized_surf);
END;
CREATE TRIGGER IF NOT EXISTS events_au AFTER UPDATE ON events BEGIN
    INSERT INTO events_fts(events_fts, rowid, surf, normalized_surf) VALUES ('delete', old.id, old.surf, old.normalized_surf);
    INSERT INTO events_fts(events_fts, rowid, surf, normalized_surf) VALUES (new.id, new.surf, new.normalized_surf);
END;

-- Indexes
CREATE INDEX IF NOT EXISTS idx_events_document ON events(document_id);
CREATE INDEX IF NOT EXISTS idx_relations_document ON relations(document_id);
CREATE INDEX IF NOT EXISTS idx_relations_modifier ON relations(document_id, modifier_event_id);
CREATE INDEX IF NOT EXISTS idx_relations_head ON relations(document_id, head_event_id);
`
