package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dbexplorer/internal/record"
)

// DirFile is the dataset file looked up when Open is given a directory.
const DirFile = "records.db"

var ErrUnsupported = errors.New("unsupported dataset format")

var sqliteHeader = []byte("SQLite format 3\x00")

// Open picks a record source for path: a directory or SQLite file opens the
// SQLite backend, a .yml/.yaml file opens a YAML dump.
func Open(path string) (record.Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		p := filepath.Join(path, DirFile)
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return OpenSQLite(p)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return OpenYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	}
	ok, err := hasSQLiteHeader(path)
	if err != nil {
		return nil, err
	}
	if ok {
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func hasSQLiteHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	buf := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(buf, sqliteHeader), nil
}
