package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

type journalEntry struct {
	key     string
	prev    []byte
	existed bool
}

// journal remembers the first previous value of every key touched inside a
// transaction so it can be put back on rollback.
type journal struct {
	entries []journalEntry
	seen    map[string]bool
}

func (j *journal) record(key string, prev []byte, existed bool) {
	if j.seen[key] {
		return
	}
	j.seen[key] = true
	j.entries = append(j.entries, journalEntry{key: key, prev: prev, existed: existed})
}

type journalCtxKey struct{}

func journalFromCtx(ctx context.Context) *journal {
	j, _ := ctx.Value(journalCtxKey{}).(*journal)
	return j
}

// TxManager runs functions as all-or-nothing units over the disk store.
// Transactions are serialized. A nested RunInTx joins the enclosing one,
// as with the postgres TxManager.
type TxManager struct {
	s *Store
}

// RunInTx executes fn with a journaling context. If fn returns an error or
// panics, every write made through that context is undone.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if journalFromCtx(ctx) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	j := &journal{seen: make(map[string]bool)}
	txCtx := context.WithValue(ctx, journalCtxKey{}, j)

	defer func() {
		if p := recover(); p != nil {
			_ = m.rollback(j)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := m.rollback(j); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return nil
}

func (m *TxManager) rollback(j *journal) error {
	var errs []error
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		var err error
		if e.existed {
			err = m.s.d.Write(e.key, e.prev)
		} else {
			err = m.s.d.Erase(e.key)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("restore %s: %w", e.key, err))
		}
	}
	return errors.Join(errs...)
}
