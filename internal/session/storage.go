package session

import (
	"context"
	"sync"
)

// Storage は1つの永続化キーを読み書きするインターフェース。
type Storage interface {
	// Read は保存済みデータを返す。キーが存在しない場合はnilを返す。
	Read(ctx context.Context) ([]byte, error)
	// Write はデータを保存する。既存データは置き換えられる。
	Write(ctx context.Context, data []byte) error
	// Remove はキーを削除する。存在しない場合もエラーにしない。
	Remove(ctx context.Context) error
}

// KeyValueStore はスロットキーごとにデータを保持する永続化インターフェース。
// repository.PostgresSlotRepoとMemoryKVが実装する。
type KeyValueStore interface {
	// Get は指定キーのデータを返す。見つからない場合はnilを返す。
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// keyedStorage はKeyValueStoreの1キーをStorageとして扱うアダプタ。
type keyedStorage struct {
	kv  KeyValueStore
	key string
}

// KeyedStorage はKeyValueStoreの指定キーに対するStorageを返す。
func KeyedStorage(kv KeyValueStore, key string) Storage {
	return &keyedStorage{kv: kv, key: key}
}

func (s *keyedStorage) Read(ctx context.Context) ([]byte, error) {
	return s.kv.Get(ctx, s.key)
}

func (s *keyedStorage) Write(ctx context.Context, data []byte) error {
	return s.kv.Put(ctx, s.key, data)
}

func (s *keyedStorage) Remove(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}

// MemoryKV はプロセス内メモリに保持するKeyValueStore。
// SESSION_BACKEND=memory およびテストで使用する。
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV はMemoryKVを生成する。
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get は指定キーのデータのコピーを返す。
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put は指定キーにデータを保存する。
func (m *MemoryKV) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Delete は指定キーを削除する。
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Len は保持しているキーの数を返す。テスト用。
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// PingContext は常に成功する。ヘルスチェック用。
func (m *MemoryKV) PingContext(ctx context.Context) error {
	return nil
}
