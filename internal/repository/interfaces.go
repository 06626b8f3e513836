// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/linkpass/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// UpdateLastActivity はユーザーの最終アクセス日時を更新する。
	// 同時アクセス時はlast-writer-winsでよい。
	UpdateLastActivity(ctx context.Context, id string, at time.Time) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// SystemLogRepository はアクセス監査レコードの永続化インターフェース。
// 追記専用であり、更新系の操作は提供しない。
type SystemLogRepository interface {
	// Insert は監査レコードを1件追記する。
	// 監査はコンプライアンス要件のため、失敗は呼び出し側で握りつぶさないこと。
	Insert(ctx context.Context, entry *model.SystemLog) error

	// ListRecent は監査レコードを新しい順に最大limit件返す。
	ListRecent(ctx context.Context, limit int) ([]*model.SystemLog, error)
}
