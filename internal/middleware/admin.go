package middleware

import (
	"net/http"

	"github.com/hitoshi/linkpass/internal/model"
)

// NewAdminOnlyMiddleware は管理権限を持つセッションのみを通過させる
// ミドルウェアを返す。セッションミドルウェアの後段に配置すること。
// 管理権限のないリクエストには403 Forbiddenを返す。
func NewAdminOnlyMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminFromContext(r.Context()) {
				WriteErrorResponse(w, http.StatusForbidden, model.NewAdminRequiredError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
