// Package catalog records conversions in a SQLite database so a mining
// pipeline can find dumps by the node kinds they contain.
package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/astdump/internal/syntax"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	language TEXT NOT NULL,
	format TEXT NOT NULL,
	nodes INTEGER NOT NULL,
	depth INTEGER NOT NULL,
	digest TEXT NOT NULL,
	kinds BLOB NOT NULL,
	created INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_language ON conversions(language);

CREATE TABLE IF NOT EXISTS kinds (
	language TEXT NOT NULL,
	name TEXT NOT NULL,
	symbol INTEGER NOT NULL,
	PRIMARY KEY (language, name, symbol)
) WITHOUT ROWID;
`

// Entry is one catalogued conversion.
type Entry struct {
	ID       int64
	Input    string
	Output   string
	Language string
	Format   string
	Nodes    int
	Depth    int
	Digest   string
	Created  time.Time
}

// Catalog is a SQLite-backed conversion log.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the catalog at dbPath.
func Open(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Catalog{db: db, now: time.Now}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Digest returns the hex SHA-256 of an artifact.
func Digest(artifact string) string {
	sum := sha256.Sum256([]byte(artifact))
	return hex.EncodeToString(sum[:])
}

// Record stores one successful conversion of tree into output.
func (c *Catalog) Record(ctx context.Context, tree *syntax.Tree, output, format, artifact string) error {
	kinds := tree.Kinds()
	bm := roaring.New()
	for sym := range kinds {
		bm.Add(uint32(sym))
	}
	var buf bytes.Buffer
	if _, err := bm.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize kinds for %s: %w", tree.Path, err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	kindStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO kinds (language, name, symbol) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare kinds insert: %w", err)
	}
	defer func() { _ = kindStmt.Close() }()

	for sym, name := range kinds {
		if _, err := kindStmt.ExecContext(ctx, tree.Language, name, int64(sym)); err != nil {
			return fmt.Errorf("insert kind %s: %w", name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO conversions (input, output, language, format, nodes, depth, digest, kinds, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tree.Path, output, tree.Language, format, tree.Count(), tree.Depth(), Digest(artifact), buf.Bytes(), c.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert conversion %s: %w", tree.Path, err)
	}
	return tx.Commit()
}

// WithKind returns the conversions whose tree contains a node of kind. An
// empty language searches every language. Results are ordered by id.
func (c *Catalog) WithKind(ctx context.Context, language, kind string) ([]Entry, error) {
	symbols, err := c.symbols(ctx, language, kind)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	query := `SELECT id, input, output, language, format, nodes, depth, digest, kinds, created FROM conversions`
	var args []any
	if language != "" {
		query += ` WHERE language = ?`
		args = append(args, language)
	}
	query += ` ORDER BY id`

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			blob    []byte
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Input, &e.Output, &e.Language, &e.Format, &e.Nodes, &e.Depth, &e.Digest, &blob, &created); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		bm := roaring.New()
		if err := bm.UnmarshalBinary(blob); err != nil {
			return nil, fmt.Errorf("decode kinds for %s: %w", e.Input, err)
		}
		if !containsAny(bm, symbols[e.Language]) {
			continue
		}
		e.Created = time.Unix(0, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Kinds lists the kind names seen for language, sorted.
func (c *Catalog) Kinds(ctx context.Context, language string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT DISTINCT name FROM kinds WHERE language = ?`, language)
	if err != nil {
		return nil, fmt.Errorf("query kinds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, rows.Err()
}

// symbols maps language to the grammar symbols named kind.
func (c *Catalog) symbols(ctx context.Context, language, kind string) (map[string][]uint32, error) {
	query := `SELECT language, symbol FROM kinds WHERE name = ?`
	args := []any{kind}
	if language != "" {
		query += ` AND language = ?`
		args = append(args, language)
	}
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query symbols for %s: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]uint32)
	for rows.Next() {
		var (
			lang string
			sym  int64
		)
		if err := rows.Scan(&lang, &sym); err != nil {
			return nil, err
		}
		out[lang] = append(out[lang], uint32(sym))
	}
	return out, rows.Err()
}

func containsAny(bm *roaring.Bitmap, symbols []uint32) bool {
	for _, s := range symbols {
		if bm.Contains(s) {
			return true
		}
	}
	return false
}
