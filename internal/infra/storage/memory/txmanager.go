package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager сериализует транзакции одним мьютексом процесса и откатывает данные Store при ошибке
type TxManager struct {
	mu    sync.Mutex
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.restore(before)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		m.store.restore(before)
		return err
	}
	return nil
}
