// Package model はドメインモデルを定義する。
package model

import "time"

// Event は監査ログのイベント種別を表す。
type Event string

const (
	// EventUserWebAccess は署名付きURLによるアクセス成功を示す。
	EventUserWebAccess Event = "user_web_access"
	// EventUserExpiredLink は期限切れリンクへのアクセスを示す。
	EventUserExpiredLink Event = "user_expired_link"
	// EventUserInvalidLink は無効（改ざん・不正形式）リンクへのアクセスを示す。
	EventUserInvalidLink Event = "user_invalid_link"
)

// LogType は監査ログの重要度を表す。
type LogType string

const (
	LogTypeInfo    LogType = "info"
	LogTypeWarning LogType = "warning"
	LogTypeError   LogType = "error"
	LogTypeAudit   LogType = "audit"
)

// SystemLog はアクセス監査レコードを表す。
// 追記専用であり、このサービスが書き込み後に変更・削除することはない。
// UserIDはトークンから対象ユーザーを特定できない場合にnilとなる。
type SystemLog struct {
	ID        string
	Event     Event
	LogType   LogType
	UserID    *string
	CreatedAt time.Time
}
