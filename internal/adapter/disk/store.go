// Package disk stores documents and their activity log in a local
// directory tree managed by diskv. It is meant for single-node and
// development deployments; the postgres adapter is the production store.
package disk

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/peterbourgon/diskv/v3"

	"github.com/heartmarshall/queue-backend/internal/config"
)

const keySep = ":"

// Store is the shared diskv handle behind DocumentRepo, AuditRepo and
// TxManager.
type Store struct {
	d   *diskv.Diskv
	enc cbor.EncMode

	// mu serializes read-modify-write sequences on single keys.
	mu sync.Mutex
	// txMu serializes transactions.
	txMu sync.Mutex
}

// Open creates a store rooted at cfg.DiskPath.
func Open(cfg config.StorageConfig) (*Store, error) {
	if cfg.DiskPath == "" {
		return nil, errors.New("disk store: path is required")
	}
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	enc, err := opts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("disk store: cbor enc mode: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          cfg.DiskPath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      cfg.DiskCacheBytes,
		}),
		enc: enc,
	}, nil
}

// Documents returns the document repository view of the store.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{s: s} }

// Audit returns the audit repository view of the store.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// TxManager returns the transaction manager of the store.
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// Ping checks that the base directory is writable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	const probe = "health" + keySep + "probe"
	if err := s.d.Write(probe, []byte{1}); err != nil {
		return fmt.Errorf("disk store: write probe: %w", err)
	}
	if err := s.d.Erase(probe); err != nil {
		return fmt.Errorf("disk store: erase probe: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, keySep)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pk.Path...), pk.FileName), keySep)
}

// encodeID makes an arbitrary id safe to use as a path element.
func encodeID(id string) string {
	return hex.EncodeToString([]byte(id))
}

func documentKey(id string) string {
	return "doc" + keySep + encodeID(id)
}

func auditPrefix(documentID string) string {
	return "audit" + keySep + encodeID(documentID) + keySep
}

// ---------------------------------------------------------------------------
// Raw access
// ---------------------------------------------------------------------------

// read returns the value at key and whether it exists.
func (s *Store) read(key string) ([]byte, bool, error) {
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return b, true, nil
}

func (s *Store) readValue(key string, v any) (bool, error) {
	b, ok, err := s.read(key)
	if err != nil || !ok {
		return ok, err
	}
	if err := cbor.Unmarshal(b, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// write stores v at key and journals the previous value when ctx carries
// a transaction.
func (s *Store) write(ctx context.Context, key string, v any) error {
	b, err := s.enc.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.journal(ctx, key); err != nil {
		return err
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) erase(ctx context.Context, key string) error {
	if err := s.journal(ctx, key); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

func (s *Store) journal(ctx context.Context, key string) error {
	j := journalFromCtx(ctx)
	if j == nil {
		return nil
	}
	prev, existed, err := s.read(key)
	if err != nil {
		return err
	}
	j.record(key, prev, existed)
	return nil
}

// keys lists the keys under prefix.
func (s *Store) keys(ctx context.Context, prefix string) []string {
	var out []string
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		out = append(out, key)
	}
	return out
}
