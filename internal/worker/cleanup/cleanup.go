// Package cleanup は運用データの自動削除ジョブを提供する。
// 期限切れセッションと、保持期間（デフォルト365日）を超過した監査ログを
// 日次バッチで削除する。アクセスサービス自体は監査ログを変更・削除しない。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// CleanupJob は期限切れセッションと古い監査ログの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	db               Executor
	logger           *slog.Logger
	LogRetentionDays int // 監査ログの保持日数（デフォルト: 365）
}

// NewCleanupJob は新しいCleanupJobを生成する。
// デフォルトの監査ログ保持日数は365日。
func NewCleanupJob(db Executor, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		db:               db,
		logger:           logger,
		LogRetentionDays: 365,
	}
}

// Run は期限切れセッションと保持期間を超過した監査ログを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	expiredSessions, err := j.purgeExpiredSessions(ctx)
	if err != nil {
		return err
	}

	agedLogs, err := j.purgeAgedLogs(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("deleted_sessions", expiredSessions),
		slog.Int64("deleted_logs", agedLogs),
		slog.Int("log_retention_days", j.LogRetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// purgeExpiredSessions は有効期限を過ぎたセッション行を削除する。
func (j *CleanupJob) purgeExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < now()`
	result, err := j.db.ExecContext(ctx, query)
	if err != nil {
		j.logger.Error("期限切れセッションの削除に失敗しました",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("期限切れセッションの削除に失敗: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	return deleted, nil
}

// purgeAgedLogs は保持期間を超過したsystem_logs行を削除する。
func (j *CleanupJob) purgeAgedLogs(ctx context.Context) (int64, error) {
	interval := fmt.Sprintf("%d days", j.LogRetentionDays)

	query := `DELETE FROM system_logs WHERE created_at < now() - $1::interval`
	result, err := j.db.ExecContext(ctx, query, interval)
	if err != nil {
		j.logger.Error("監査ログのクリーンアップに失敗しました",
			slog.String("error", err.Error()),
			slog.Int("log_retention_days", j.LogRetentionDays),
		)
		return 0, fmt.Errorf("監査ログのクリーンアップに失敗: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	return deleted, nil
}
