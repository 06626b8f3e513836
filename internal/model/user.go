// Package model はドメインモデルを定義する。
package model

import "time"

// User はCRMで管理されるユーザーを表す。
// 署名付きURLの対象（subject）となる。
// IsAdminが真のユーザー（CRM運用スタッフ）のみがリンク発行・監査ログ参照の
// 管理APIを利用できる。
type User struct {
	ID             string
	Email          string
	Name           string
	IsAdmin        bool       // 管理APIの利用権限
	LastActivityAt *time.Time // 最終アクセス日時。未アクセスの場合はnil。
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
// 署名付きURLの検証成功時に発行され、HTTP Only Cookieで参照される。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
