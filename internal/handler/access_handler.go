// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/linkpass/internal/access"
)

const sessionCookieName = "session_id"

// AccessServiceInterface はアクセスハンドラーが必要とするサービスインターフェース。
type AccessServiceInterface interface {
	Grant(ctx context.Context, tokenStr string) (*access.GrantResult, error)
}

// AccessHandlerConfig はアクセスハンドラーの設定。
type AccessHandlerConfig struct {
	DashboardURL  string // アクセス成功時のリダイレクト先
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AccessHandler は署名付きURLアクセスのHTTPハンドラー。
type AccessHandler struct {
	service AccessServiceInterface
	config  AccessHandlerConfig
}

// NewAccessHandler はAccessHandlerを生成する。
func NewAccessHandler(service AccessServiceInterface, config AccessHandlerConfig) *AccessHandler {
	return &AccessHandler{
		service: service,
		config:  config,
	}
}

// resultPageTemplate は期限切れ・無効リンクのユーザー向けページ。
// 管理画面の表示言語に合わせてフランス語で表示する。
var resultPageTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f5f6f8; margin: 0; display: flex; align-items: center; justify-content: center; min-height: 100vh; }
.card { background: #fff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,.08); padding: 2.5rem 3rem; max-width: 28rem; text-align: center; }
h1 { font-size: 1.4rem; margin: 0 0 .75rem; color: #1f2933; }
p { color: #52606d; margin: 0; line-height: 1.6; }
</style>
</head>
<body>
<div class="card">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</div>
</body>
</html>
`))

// resultPageData は結果ページのテンプレート変数。
type resultPageData struct {
	Title   string
	Message string
}

// Access は署名付きURLによるアクセスを処理する。
// GET /access/{token}
//
// 判定結果に応じて応答を分岐する:
//   - 有効: セッションCookieを設定し、ダッシュボードへ302リダイレクト
//   - 期限切れ: 「Lien expiré」ページを200で表示
//   - 無効: 「Lien invalide」ページを200で表示
//
// 監査記録の失敗を含むインフラ障害時は500を返す。
func (h *AccessHandler) Access(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")
	if tokenStr == "" {
		h.renderResultPage(w, resultPageData{
			Title:   "Lien invalide",
			Message: "Ce lien d'accès n'est pas valide. Veuillez demander un nouveau lien.",
		})
		return
	}

	result, err := h.service.Grant(r.Context(), tokenStr)
	if err != nil {
		slog.Error("access grant failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	switch result.Outcome {
	case access.OutcomeValid:
		// セッションCookieを設定（HTTP Only）
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    result.Session.ID,
			Path:     "/",
			Domain:   h.config.CookieDomain,
			MaxAge:   h.config.SessionMaxAge,
			HttpOnly: true,
			Secure:   h.config.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, h.config.DashboardURL, http.StatusFound)

	case access.OutcomeExpired:
		h.renderResultPage(w, resultPageData{
			Title:   "Lien expiré",
			Message: "Ce lien d'accès a expiré. Veuillez demander un nouveau lien pour vous connecter.",
		})

	case access.OutcomeInvalid:
		h.renderResultPage(w, resultPageData{
			Title:   "Lien invalide",
			Message: "Ce lien d'accès n'est pas valide. Veuillez demander un nouveau lien.",
		})
	}
}

// renderResultPage は結果ページを200で描画する。
func (h *AccessHandler) renderResultPage(w http.ResponseWriter, data resultPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := resultPageTemplate.Execute(w, data); err != nil {
		slog.Error("failed to render result page", slog.String("error", err.Error()))
	}
}
