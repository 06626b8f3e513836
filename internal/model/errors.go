// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// メッセージは管理画面の表示言語（フランス語）で記述する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
	ErrCodeInvalidUserID = "INVALID_USER_ID"
	ErrCodeInvalidLimit  = "INVALID_LIMIT"
	ErrCodeAdminRequired = "ADMIN_REQUIRED"
)

// NewAdminRequiredError は管理権限のないユーザーが管理APIを呼び出した場合の
// エラーを生成する。
func NewAdminRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeAdminRequired,
		Message:  "Cette opération nécessite des droits d'administrateur.",
		Category: "auth",
		Action:   "Contactez un administrateur de votre organisation.",
	}
}

// NewUserNotFoundError は対象ユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("Utilisateur introuvable : %s", userID),
		Category: "auth",
		Action:   "Vérifiez l'identifiant de l'utilisateur.",
	}
}

// NewInvalidUserIDError はユーザーIDが空または不正な場合のエラーを生成する。
func NewInvalidUserIDError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidUserID,
		Message:  "Identifiant d'utilisateur invalide.",
		Category: "validation",
		Action:   "Indiquez un identifiant d'utilisateur valide.",
	}
}

// NewInvalidLimitError は一覧取得のlimitパラメータが不正な場合のエラーを生成する。
func NewInvalidLimitError(limit string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidLimit,
		Message:  fmt.Sprintf("Paramètre limit invalide : %s", limit),
		Category: "validation",
		Action:   "Indiquez un entier entre 1 et 500.",
	}
}
