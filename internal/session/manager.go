package session

import (
	"context"
	"fmt"
)

// Manager はスロットキーごとにStoreを開く。
// HTTPサーバーではブラウザごとのスロットをCookieで識別する。
type Manager struct {
	kv KeyValueStore
}

// NewManager はManagerを生成する。
func NewManager(kv KeyValueStore) *Manager {
	return &Manager{kv: kv}
}

// Open は指定スロットのStoreを生成し、Loadで状態を復元して返す。
func (m *Manager) Open(ctx context.Context, slotKey string) (*Store, error) {
	if slotKey == "" {
		return nil, fmt.Errorf("slot key is required")
	}

	store := NewStore(KeyedStorage(m.kv, slotKey))
	if _, err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
