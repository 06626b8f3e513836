package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/linkpass/internal/middleware"
	"github.com/hitoshi/linkpass/internal/model"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// SystemLogListerInterface は監査ログハンドラーが必要とするインターフェース。
type SystemLogListerInterface interface {
	ListRecent(ctx context.Context, limit int) ([]*model.SystemLog, error)
}

// SystemLogHandler は監査ログ参照のHTTPハンドラー。
type SystemLogHandler struct {
	lister SystemLogListerInterface
}

// NewSystemLogHandler はSystemLogHandlerを生成する。
func NewSystemLogHandler(lister SystemLogListerInterface) *SystemLogHandler {
	return &SystemLogHandler{lister: lister}
}

// systemLogResponse は監査ログレスポンスの1エントリ。
type systemLogResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	LogType   string    `json:"log_type"`
	UserID    *string   `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs は監査ログを新しい順に返す。
// GET /api/logs?limit=50
func (h *SystemLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxLogLimit {
			middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidLimitError(raw))
			return
		}
		limit = parsed
	}

	entries, err := h.lister.ListRecent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list system logs", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	logs := make([]systemLogResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, systemLogResponse{
			ID:        e.ID,
			Event:     string(e.Event),
			LogType:   string(e.LogType),
			UserID:    e.UserID,
			CreatedAt: e.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"logs": logs,
	})
}
