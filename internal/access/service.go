// Package access は署名付きURLによるパスワードレスアクセスのビジネスロジックを提供する。
// トークンの発行、3値判定（有効・期限切れ・無効）、セッション発行、監査ログの記録を行う。
package access

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/linkpass/internal/metrics"
	"github.com/hitoshi/linkpass/internal/model"
	"github.com/hitoshi/linkpass/internal/repository"
	"github.com/hitoshi/linkpass/internal/token"
)

// Clock は現在時刻の取得を抽象化する。
// テストでは固定時刻や時間経過をシミュレートするために差し替える。
type Clock func() time.Time

// Outcome はアクセストークンの判定結果を表す。
type Outcome string

const (
	// OutcomeValid はトークンが完全かつ有効期間内であることを示す。
	OutcomeValid Outcome = "valid"
	// OutcomeExpired はトークンは完全だが有効期間を超過していることを示す。
	OutcomeExpired Outcome = "expired"
	// OutcomeInvalid はトークンが改ざん・不正形式、または対象ユーザー不明であることを示す。
	OutcomeInvalid Outcome = "invalid"
)

// Resolution はトークン判定の結果を表す。
// UserはValidとExpiredで設定される（Expiredでも監査の帰属にsubjectを使う）。
// Invalidでは常にnil。
type Resolution struct {
	Outcome Outcome
	User    *model.User
}

// GrantResult はアクセス処理の結果を表す。
// SessionはOutcomeValidの場合のみ設定される。
type GrantResult struct {
	Resolution
	Session *model.Session
}

// IssuedLink は発行された署名付きURLを表す。
type IssuedLink struct {
	URL       string
	Token     string
	ExpiresAt time.Time
}

// ServiceConfig はアクセスサービスの設定。
type ServiceConfig struct {
	TokenTTL      time.Duration // 署名付きURLの有効期間
	SessionMaxAge int           // セッション有効期間（秒）
	BaseURL       string        // 署名付きURLの生成に使用するベースURL
}

// Service は署名付きURLアクセスに関するビジネスロジックを提供する。
type Service struct {
	codec       *token.Codec
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	logRepo     repository.SystemLogRepository
	collector   metrics.MetricsCollector
	clock       Clock
	config      ServiceConfig
}

// NewService はServiceを生成する。
// clockがnilの場合はtime.Nowを使用する。
func NewService(
	codec *token.Codec,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	logRepo repository.SystemLogRepository,
	collector metrics.MetricsCollector,
	clock Clock,
	config ServiceConfig,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &Service{
		codec:       codec,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logRepo:     logRepo,
		collector:   collector,
		clock:       clock,
		config:      config,
	}
}

// IssueLink は指定ユーザー向けの署名付きURLを発行する。
// ユーザーが存在しない場合はAPIErrorを返す。副作用はメトリクス記録のみ。
func (s *Service) IssueLink(ctx context.Context, userID string) (*IssuedLink, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(userID)
	}

	now := s.clock()
	tok, err := s.codec.Generate(user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.collector.RecordLinkIssued()
	slog.Info("access link issued",
		slog.String("user_id", user.ID),
		slog.Time("expires_at", now.Add(s.config.TokenTTL)),
	)

	return &IssuedLink{
		URL:       s.config.BaseURL + "/access/" + tok,
		Token:     tok,
		ExpiresAt: now.Add(s.config.TokenTTL),
	}, nil
}

// Resolve はトークン文字列を3値に分類する。
//
//   - 復号・検証失敗（改ざん・不正形式）→ Invalid
//   - 対象ユーザーが存在しない → Invalid（トークンの形式が正しかったかは漏らさない）
//   - 発行からTTLを超過 → Expired（subjectは判明しているためUserを保持する）
//   - それ以外 → Valid
//
// 境界はTTLちょうどまでValid（now - issued_at <= TTL）。
// 再試行も外部呼び出しもない純粋な分類であり、エラーはユーザー検索の
// インフラ障害時のみ返す。
func (s *Service) Resolve(ctx context.Context, tokenStr string, now time.Time) (*Resolution, error) {
	claims, err := s.codec.Decode(tokenStr)
	if err != nil {
		return &Resolution{Outcome: OutcomeInvalid}, nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token subject: %w", err)
	}
	if user == nil {
		return &Resolution{Outcome: OutcomeInvalid}, nil
	}

	if now.Sub(claims.IssuedTime()) > s.config.TokenTTL {
		return &Resolution{Outcome: OutcomeExpired, User: user}, nil
	}

	return &Resolution{Outcome: OutcomeValid, User: user}, nil
}

// Grant は受信したトークンに対するアクセス処理を1回だけ実行する。
//
// Valid: セッションを発行し、last_activity_atを更新し、user_web_accessを監査記録する。
// Expired / Invalid: セッション・ユーザーには触れず、対応するイベントのみ監査記録する。
//
// 監査レコードは結果にかかわらず1アクセス試行につき必ず1件書き込む。
// 監査書き込みの失敗はコンプライアンス要件のため握りつぶさず、ハードエラーとして返す。
func (s *Service) Grant(ctx context.Context, tokenStr string) (*GrantResult, error) {
	start := time.Now()
	defer func() {
		s.collector.RecordResolveLatency(time.Since(start))
	}()

	now := s.clock()

	res, err := s.Resolve(ctx, tokenStr, now)
	if err != nil {
		return nil, err
	}

	result := &GrantResult{Resolution: *res}

	switch res.Outcome {
	case OutcomeValid:
		session, err := s.createSession(ctx, res.User.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		result.Session = session

		if err := s.userRepo.UpdateLastActivity(ctx, res.User.ID, now); err != nil {
			return nil, fmt.Errorf("failed to update last activity: %w", err)
		}

		userID := res.User.ID
		if err := s.audit(ctx, model.EventUserWebAccess, model.LogTypeAudit, &userID, now); err != nil {
			return nil, err
		}

		slog.Info("user web access granted",
			slog.String("user_id", res.User.ID),
			slog.String("session_id", session.ID),
		)

	case OutcomeExpired:
		userID := res.User.ID
		if err := s.audit(ctx, model.EventUserExpiredLink, model.LogTypeInfo, &userID, now); err != nil {
			return nil, err
		}

		slog.Info("expired link presented",
			slog.String("user_id", res.User.ID),
		)

	case OutcomeInvalid:
		if err := s.audit(ctx, model.EventUserInvalidLink, model.LogTypeWarning, nil, now); err != nil {
			return nil, err
		}

		slog.Warn("invalid link presented")
	}

	s.collector.RecordAccessOutcome(string(res.Outcome))

	return result, nil
}

// Logout はセッションを破棄する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentUser はセッションから現在のユーザーを取得する。
func (s *Service) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return user, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string, now time.Time) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: now.Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// audit は監査レコードを1件追記する。失敗はハードエラー。
func (s *Service) audit(ctx context.Context, event model.Event, logType model.LogType, userID *string, now time.Time) error {
	entry := &model.SystemLog{
		ID:        uuid.New().String(),
		Event:     event,
		LogType:   logType,
		UserID:    userID,
		CreatedAt: now,
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		s.collector.RecordAuditWriteFailure()
		return fmt.Errorf("failed to record audit log: %w", err)
	}

	return nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
