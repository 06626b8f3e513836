package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/linkpass/internal/access"
	"github.com/hitoshi/linkpass/internal/middleware"
	"github.com/hitoshi/linkpass/internal/model"
)

// LinkServiceInterface はリンク発行ハンドラーが必要とするサービスインターフェース。
type LinkServiceInterface interface {
	IssueLink(ctx context.Context, userID string) (*access.IssuedLink, error)
}

// LinkHandler は署名付きURL発行のHTTPハンドラー。
type LinkHandler struct {
	service LinkServiceInterface
}

// NewLinkHandler はLinkHandlerを生成する。
func NewLinkHandler(service LinkServiceInterface) *LinkHandler {
	return &LinkHandler{service: service}
}

// issueLinkRequest はリンク発行リクエストのボディ。
type issueLinkRequest struct {
	UserID string `json:"user_id"`
}

// issueLinkResponse はリンク発行レスポンスのボディ。
type issueLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueLink は指定ユーザー向けの署名付きURLを発行する。
// POST /api/access-links
//
// リクエスト: {"user_id": "..."}
// レスポンス: 201 {"url": "...", "expires_at": "..."}
func (h *LinkHandler) IssueLink(w http.ResponseWriter, r *http.Request) {
	var req issueLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidUserIDError())
		return
	}
	if req.UserID == "" {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidUserIDError())
		return
	}

	link, err := h.service.IssueLink(r.Context(), req.UserID)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			middleware.WriteErrorResponse(w, http.StatusNotFound, apiErr)
			return
		}

		slog.Error("failed to issue access link",
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(issueLinkResponse{
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt,
	})
}
