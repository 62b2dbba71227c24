// Package session はログイン中のIdentityを1つだけ保持するセッションストアを提供する。
//
// Storeはメモリ上の状態と永続化ストレージを持ち、Set/Clearのたびに
// ストレージへ書き込む。ストレージからの読み込みはLoadのみで行う。
// 有効期限はなく、Clearされるまで保持し続ける。
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hitoshi/gatehouse/internal/model"
)

// Store は0個または1個のIdentityを保持するセッションストア。
type Store struct {
	storage Storage

	mu      sync.RWMutex
	current *model.Identity
}

// NewStore はStoreを生成する。生成直後はIdentityを保持していない。
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load はストレージからIdentityを読み込み、メモリ上の状態を置き換える。
// データが存在しない場合、または形式が不正な場合はnilを返す。
// 不正データは警告ログのみ出力し、エラーとして扱わない。
// ストレージの読み込み自体に失敗した場合のみエラーを返す。
func (s *Store) Load(ctx context.Context) (*model.Identity, error) {
	data, err := s.storage.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var ident *model.Identity
	if data != nil {
		ident, err = Decode(data)
		if err != nil {
			slog.Warn("ignoring malformed session data", slog.String("error", err.Error()))
			ident = nil
		}
	}

	s.mu.Lock()
	s.current = ident
	s.mu.Unlock()

	return ident.Clone(), nil
}

// Set はIdentityをストレージに書き込み、メモリ上の状態を置き換える。
// 書き込みに失敗した場合はメモリ上の状態を変更しない。
func (s *Store) Set(ctx context.Context, ident *model.Identity) error {
	data, err := Encode(ident)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.storage.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.current = ident.Clone()
	s.mu.Unlock()

	return nil
}

// Clear はストレージからIdentityを削除し、メモリ上の状態を空にする。
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Remove(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return nil
}

// Current はメモリ上のIdentityのコピーを返す。未ログインの場合はnilを返す。
func (s *Store) Current() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}
