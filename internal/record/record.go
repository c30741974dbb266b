package record

import (
	"context"
	"encoding/hex"
)

// Identity is the position of a Record in the collection it was loaded into.
// It never changes after load and is the join key for list entries.
type Identity int

// Version is one physical value stored under a key.
type Version struct {
	Deleted   bool
	Value     []byte
	FeedIndex int
}

// Record is a logical key with one or more versions. Versions[0] is the
// current value, the rest are conflicting alternates.
type Record struct {
	Key      string
	Versions []Version
}

// Conflicts returns how many versions exist beyond the first.
func (r Record) Conflicts() int {
	if len(r.Versions) == 0 {
		return 0
	}
	return len(r.Versions) - 1
}

// Feed is the append-only source a version came from.
type Feed struct {
	Key          []byte
	DiscoveryKey []byte
	Length       int64
	ByteLength   int64
}

func (f Feed) KeyHex() string          { return hex.EncodeToString(f.Key) }
func (f Feed) DiscoveryKeyHex() string { return hex.EncodeToString(f.DiscoveryKey) }

// Feeds is a read-only lookup table indexed by Version.FeedIndex.
type Feeds []Feed

func (fs Feeds) Lookup(i int) (Feed, bool) {
	if i < 0 || i >= len(fs) {
		return Feed{}, false
	}
	return fs[i], true
}

// Source supplies every record of a dataset once at startup.
type Source interface {
	ReadAll(ctx context.Context) ([]Record, error)
	Feeds() Feeds
	Close() error
}
