package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dbexplorer/internal/record"
)

type yamlFeed struct {
	Key          string `yaml:"key"`
	DiscoveryKey string `yaml:"discovery_key"`
	Length       int64  `yaml:"length"`
	ByteLength   int64  `yaml:"byte_length"`
}

type yamlVersion struct {
	Value   string `yaml:"value"`
	Deleted bool   `yaml:"deleted"`
	Feed    int    `yaml:"feed"`
}

type yamlRecord struct {
	Key      string        `yaml:"key"`
	Versions []yamlVersion `yaml:"versions"`
}

type yamlDump struct {
	Feeds   []yamlFeed   `yaml:"feeds"`
	Records []yamlRecord `yaml:"records"`
}

// YAML is a dataset dumped to a single YAML document.
type YAML struct {
	path  string
	feeds record.Feeds
}

func OpenYAML(path string) (*YAML, error) {
	return &YAML{path: path}, nil
}

func (y *YAML) ReadAll(ctx context.Context) ([]record.Record, error) {
	b, err := os.ReadFile(y.path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var d yamlDump
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", y.path, err)
	}
	feeds := make(record.Feeds, 0, len(d.Feeds))
	for i, f := range d.Feeds {
		key, err := hex.DecodeString(f.Key)
		if err != nil {
			return nil, fmt.Errorf("feed %d key: %w", i, err)
		}
		dk, err := hex.DecodeString(f.DiscoveryKey)
		if err != nil {
			return nil, fmt.Errorf("feed %d discovery_key: %w", i, err)
		}
		feeds = append(feeds, record.Feed{Key: key, DiscoveryKey: dk, Length: f.Length, ByteLength: f.ByteLength})
	}
	out := make([]record.Record, 0, len(d.Records))
	for _, r := range d.Records {
		if len(r.Versions) == 0 {
			return nil, fmt.Errorf("record %q has no versions", r.Key)
		}
		rec := record.Record{Key: r.Key, Versions: make([]record.Version, 0, len(r.Versions))}
		for _, v := range r.Versions {
			var val []byte
			if v.Value != "" {
				val = []byte(v.Value)
			}
			rec.Versions = append(rec.Versions, record.Version{Deleted: v.Deleted, Value: val, FeedIndex: v.Feed})
		}
		out = append(out, rec)
	}
	y.feeds = feeds
	return out, nil
}

// Feeds is populated by ReadAll.
func (y *YAML) Feeds() record.Feeds { return y.feeds }

func (y *YAML) Close() error { return nil }
