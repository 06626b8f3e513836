package repository

import (
	"testing"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresSessionRepoはSessionRepositoryインターフェースを満たすことを検証
func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// PostgresSystemLogRepoはSystemLogRepositoryインターフェースを満たすことを検証
func TestPostgresSystemLogRepo_ImplementsInterface(t *testing.T) {
	var _ SystemLogRepository = (*PostgresSystemLogRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSessionRepoが正しく初期化されることを検証
func TestNewPostgresSessionRepo_Initializes(t *testing.T) {
	repo := NewPostgresSessionRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSystemLogRepoが正しく初期化されることを検証
func TestNewPostgresSystemLogRepo_Initializes(t *testing.T) {
	repo := NewPostgresSystemLogRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}
