package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/linkpass/internal/model"
)

// PostgresSystemLogRepo はPostgreSQLを使用した監査ログリポジトリ。
// system_logsテーブルへの追記と参照のみを提供する。
type PostgresSystemLogRepo struct {
	db *sql.DB
}

// NewPostgresSystemLogRepo はPostgresSystemLogRepoを生成する。
func NewPostgresSystemLogRepo(db *sql.DB) *PostgresSystemLogRepo {
	return &PostgresSystemLogRepo{db: db}
}

// Insert は監査レコードを1件追記する。
func (r *PostgresSystemLogRepo) Insert(ctx context.Context, entry *model.SystemLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO system_logs (id, event, log_type, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, string(entry.Event), string(entry.LogType), entry.UserID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert system log: %w", err)
	}
	return nil
}

// ListRecent は監査レコードを新しい順に最大limit件返す。
func (r *PostgresSystemLogRepo) ListRecent(ctx context.Context, limit int) ([]*model.SystemLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event, log_type, user_id, created_at
		 FROM system_logs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list system logs: %w", err)
	}
	defer rows.Close()

	var entries []*model.SystemLog
	for rows.Next() {
		entry := &model.SystemLog{}
		var event, logType string
		if err := rows.Scan(&entry.ID, &event, &logType, &entry.UserID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan system log: %w", err)
		}
		entry.Event = model.Event(event)
		entry.LogType = model.LogType(logType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate system logs: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ SystemLogRepository = (*PostgresSystemLogRepo)(nil)
