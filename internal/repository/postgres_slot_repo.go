// Package repository はPostgreSQLによるセッションスロットの永続化を提供する。
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/gatehouse/internal/session"
)

// PostgresSlotRepo はPostgreSQLを使用したセッションスロットリポジトリ。
// session.KeyValueStoreを実装し、1スロットにつき不透明なバイト列を1件だけ保持する。
type PostgresSlotRepo struct {
	db *sql.DB
}

// NewPostgresSlotRepo はPostgresSlotRepoを生成する。
func NewPostgresSlotRepo(db *sql.DB) *PostgresSlotRepo {
	return &PostgresSlotRepo{db: db}
}

// Get は指定キーのデータを取得する。見つからない場合はnilを返す。
func (r *PostgresSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM session_slots WHERE slot_key = $1`,
		key,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session slot: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Put は指定キーのデータを作成または置き換える。
func (r *PostgresSlotRepo) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_slots (slot_key, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot_key) DO UPDATE
		 SET data = EXCLUDED.data, updated_at = now()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save session slot: %w", err)
	}
	return nil
}

// Delete は指定キーを削除する。
func (r *PostgresSlotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM session_slots WHERE slot_key = $1`,
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session slot: %w", err)
	}
	return nil
}

// PingContext はDB接続を確認する。ヘルスチェック用。
func (r *PostgresSlotRepo) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// compile-time interface check
var _ session.KeyValueStore = (*PostgresSlotRepo)(nil)
