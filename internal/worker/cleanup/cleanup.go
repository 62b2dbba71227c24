// Package cleanup は参照されなくなったセッションスロットの削除ジョブを提供する。
// スロットCookieの有効期限を過ぎても更新されていないスロットは、
// どのブラウザからも開かれないため日次バッチで削除する。
package cleanup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultInterval はジョブの既定の実行間隔。
const DefaultInterval = 24 * time.Hour

// ErrInvalidRetention はRetentionが1秒未満の場合に返る。
// この場合は有効なスロットまで削除対象になるため、削除を行わない。
var ErrInvalidRetention = errors.New("retention must be at least one second")

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SlotCleanupJob は保持期間を超過したセッションスロットの削除ジョブ。
// 削除条件はupdated_atのみで、冪等に実行できる。
type SlotCleanupJob struct {
	db     Executor
	logger *slog.Logger
	// Retention はスロットを保持する期間。スロットCookieのMax-Ageと揃える。
	Retention time.Duration
}

// NewSlotCleanupJob は新しいSlotCleanupJobを生成する。
func NewSlotCleanupJob(db Executor, logger *slog.Logger, retention time.Duration) *SlotCleanupJob {
	return &SlotCleanupJob{
		db:        db,
		logger:    logger,
		Retention: retention,
	}
}

// Run はupdated_atがRetentionより古いスロットを削除する。
// 削除対象がない場合でもエラーにならない。Retentionが1秒未満ならErrInvalidRetentionを返す。
func (j *SlotCleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	retentionSeconds := int64(j.Retention / time.Second)
	if retentionSeconds <= 0 {
		j.logger.Error("保持期間が不正なためクリーンアップを中止しました",
			slog.Int64("retention_seconds", retentionSeconds),
		)
		return ErrInvalidRetention
	}
	interval := fmt.Sprintf("%d seconds", retentionSeconds)

	query := `DELETE FROM session_slots WHERE updated_at < now() - $1::interval`
	result, err := j.db.ExecContext(ctx, query, interval)
	if err != nil {
		j.logger.Error("セッションスロットのクリーンアップに失敗しました",
			slog.String("error", err.Error()),
			slog.Int64("retention_seconds", retentionSeconds),
		)
		return fmt.Errorf("セッションスロットのクリーンアップに失敗: %w", err)
	}

	deletedCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("削除件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	j.logger.Info("セッションスロットのクリーンアップが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Int64("retention_seconds", retentionSeconds),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return nil
}

// Start は起動直後に1回、その後intervalごとにRunを実行する。
// ctxがキャンセルされるまでブロックする。Runの失敗はログのみでループを継続する。
func (j *SlotCleanupJob) Start(ctx context.Context, interval time.Duration) {
	// Runがログを出力するため、ここではエラーを無視する
	_ = j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}
