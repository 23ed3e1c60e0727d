// Package storage publishes generated API documentation to NATS KV.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the KV bucket used when none is configured.
const DefaultBucket = "HYDRADOC_DOCS"

var keyPart = regexp.MustCompile(`^[-_=a-zA-Z0-9]+$`)

// Record is one published rendering of an API documentation.
type Record struct {
	ID        string    `json:"id"`
	API       string    `json:"api"`
	Format    string    `json:"format"`
	Checksum  string    `json:"checksum"`
	Content   string    `json:"content"`
	Revision  uint64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the KV key of the record.
func (r *Record) Key() string {
	return recordKey(r.API, r.Format)
}

// bucket is the subset of a KV bucket the store needs.
type bucket interface {
	get(ctx context.Context, key string) ([]byte, uint64, error)
	put(ctx context.Context, key string, value []byte) (uint64, error)
	keys(ctx context.Context) ([]string, error)
}

// Store provides documentation storage backed by NATS KV.
type Store struct {
	docs bucket
	now  func() time.Time
}

// NewStore creates a new Store with the given JetStream context.
// It creates the bucket if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream, name string) (*Store, error) {
	if name == "" {
		name = DefaultBucket
	}
	kv, err := getOrCreateBucket(ctx, js, name)
	if err != nil {
		return nil, fmt.Errorf("create %s bucket: %w", name, err)
	}
	return newStore(&kvBucket{kv: kv}), nil
}

func newStore(b bucket) *Store {
	return &Store{docs: b, now: time.Now}
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Hydra API documentation",
		History:     5, // Keep last 5 revisions
	})
}

// Publish stores a rendering of the documentation of api in format,
// replacing the previous one.
func (s *Store) Publish(ctx context.Context, api, format string, content []byte) (*Record, error) {
	if err := checkKey(api, format); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(content)
	r := &Record{
		ID:        uuid.New().String(),
		API:       api,
		Format:    format,
		Checksum:  hex.EncodeToString(sum[:]),
		Content:   string(content),
		CreatedAt: s.now().UTC(),
	}

	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	rev, err := s.docs.put(ctx, r.Key(), data)
	if err != nil {
		return nil, fmt.Errorf("store documentation: %w", err)
	}
	r.Revision = rev
	return r, nil
}

// Get retrieves the latest rendering of api in format.
func (s *Store) Get(ctx context.Context, api, format string) (*Record, error) {
	if err := checkKey(api, format); err != nil {
		return nil, err
	}

	data, rev, err := s.docs.get(ctx, recordKey(api, format))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get documentation: %w", err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	r.Revision = rev
	return &r, nil
}

// List returns every stored rendering ordered by key.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	keys, err := s.docs.keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list documentation keys: %w", err)
	}
	sort.Strings(keys)

	records := make([]*Record, 0, len(keys))
	for _, key := range keys {
		data, rev, err := s.docs.get(ctx, key)
		if err != nil {
			continue // Skip entries deleted since listing
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		r.Revision = rev
		records = append(records, &r)
	}
	return records, nil
}

func recordKey(api, format string) string {
	return api + "." + format
}

func checkKey(api, format string) error {
	for _, part := range []string{api, format} {
		if !keyPart.MatchString(part) {
			return fmt.Errorf("%w: %q", ErrInvalidKey, part)
		}
	}
	return nil
}

// kvBucket adapts a JetStream KV bucket.
type kvBucket struct {
	kv jetstream.KeyValue
}

func (b *kvBucket) get(ctx context.Context, key string) ([]byte, uint64, error) {
	entry, err := b.kv.Get(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	return entry.Value(), entry.Revision(), nil
}

func (b *kvBucket) put(ctx context.Context, key string, value []byte) (uint64, error) {
	return b.kv.Put(ctx, key, value)
}

func (b *kvBucket) keys(ctx context.Context) ([]string, error) {
	keys, err := b.kv.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for key := range keys.Keys() {
		out = append(out, key)
	}
	return out, nil
}
