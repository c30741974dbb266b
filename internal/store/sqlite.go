package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"dbexplorer/internal/record"

	_ "modernc.org/sqlite"
)

// SQLite reads a dataset file with the feeds/nodes schema:
//
//	feeds(idx INTEGER PRIMARY KEY, key BLOB, discovery_key BLOB, length INTEGER, byte_length INTEGER)
//	nodes(id INTEGER PRIMARY KEY, key TEXT, seq INTEGER, deleted INTEGER, value BLOB, feed INTEGER)
//
// deleted and feed may be NULL.
type SQLite struct {
	path  string
	db    *sql.DB
	feeds record.Feeds
}

func OpenSQLite(path string) (*SQLite, error) {
	// modernc.org/sqlite driver name is "sqlite".
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &SQLite{path: path, db: db}, nil
}

// ReadAll loads the feed table and every record. Records come back in the
// order their key first appears; versions are ordered by seq.
func (s *SQLite) ReadAll(ctx context.Context) ([]record.Record, error) {
	feeds, err := s.readFeeds(ctx)
	if err != nil {
		return nil, err
	}
	s.feeds = feeds

	rows, err := s.db.QueryContext(ctx, `
		SELECT n.key, n.deleted, n.value, n.feed
		FROM nodes n
		JOIN (SELECT key, MIN(id) AS first FROM nodes GROUP BY key) f ON f.key = n.key
		ORDER BY f.first, n.seq, n.id`)
	if err != nil {
		return nil, fmt.Errorf("read nodes from %s: %w", s.path, err)
	}
	defer rows.Close()

	var out []record.Record
	for rows.Next() {
		var (
			key     string
			deleted sql.NullInt64
			value   []byte
			feed    sql.NullInt64
		)
		if err := rows.Scan(&key, &deleted, &value, &feed); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		// NULL deleted is a live node; NULL feed has no feed to look up.
		v := record.Version{Deleted: deleted.Valid && deleted.Int64 != 0, Value: value, FeedIndex: -1}
		if feed.Valid {
			v.FeedIndex = int(feed.Int64)
		}
		if n := len(out); n > 0 && out[n-1].Key == key {
			out[n-1].Versions = append(out[n-1].Versions, v)
			continue
		}
		out = append(out, record.Record{Key: key, Versions: []record.Version{v}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read nodes from %s: %w", s.path, err)
	}
	return out, nil
}

func (s *SQLite) readFeeds(ctx context.Context) (record.Feeds, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, key, discovery_key, length, byte_length FROM feeds ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("read feeds from %s: %w", s.path, err)
	}
	defer rows.Close()
	var feeds record.Feeds
	for rows.Next() {
		var (
			idx int64
			f   record.Feed
		)
		if err := rows.Scan(&idx, &f.Key, &f.DiscoveryKey, &f.Length, &f.ByteLength); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		if idx != int64(len(feeds)) {
			return nil, fmt.Errorf("feeds: expected index %d, got %d", len(feeds), idx)
		}
		feeds = append(feeds, f)
	}
	return feeds, rows.Err()
}

// Feeds is populated by ReadAll.
func (s *SQLite) Feeds() record.Feeds { return s.feeds }

func (s *SQLite) Close() error { return s.db.Close() }
