package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerate_Decode_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret-key")
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tokenStr, err := codec.Generate("user-id-123", issuedAt)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := codec.Decode(tokenStr)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if claims.Subject != "user-id-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-id-123")
	}
	if !claims.IssuedTime().Equal(issuedAt) {
		t.Errorf("IssuedTime() = %v, want %v", claims.IssuedTime(), issuedAt)
	}
}

func TestGenerate_Decode_PreservesSubSecondPrecision(t *testing.T) {
	codec := NewCodec("test-secret-key")
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)

	tokenStr, err := codec.Generate("user-id-123", issuedAt)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := codec.Decode(tokenStr)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !claims.IssuedTime().Equal(issuedAt) {
		t.Errorf("IssuedTime() = %v, want %v (nanoseconds must survive the round trip)", claims.IssuedTime(), issuedAt)
	}
}

func TestGenerate_TokenIsURLSafe(t *testing.T) {
	codec := NewCodec("test-secret-key")

	tokenStr, err := codec.Generate("user-id-123", time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// URLセーフでないbase64文字（+ / =）を含まないこと
	if strings.ContainsAny(tokenStr, "+/=") {
		t.Errorf("token %q contains non-URL-safe characters", tokenStr)
	}
}

func TestGenerate_SameInput_ProducesDifferentTokens(t *testing.T) {
	codec := NewCodec("test-secret-key")
	issuedAt := time.Now()

	t1, err := codec.Generate("user-id-123", issuedAt)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	t2, err := codec.Generate("user-id-123", issuedAt)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// nonceにより毎回異なる文字列になること（どちらも復号可能）
	if t1 == t2 {
		t.Error("expected distinct tokens for repeated Generate calls")
	}
	if _, err := codec.Decode(t2); err != nil {
		t.Errorf("Decode(second token) error = %v", err)
	}
}

func TestDecode_GarbageInput_ReturnsErrMalformed(t *testing.T) {
	codec := NewCodec("test-secret-key")

	cases := []string{
		"invalid_token_here",
		"",
		"!!!not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("short")),
	}

	for _, tokenStr := range cases {
		_, err := codec.Decode(tokenStr)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", tokenStr, err)
		}
	}
}

func TestDecode_TamperedToken_ReturnsErrMalformed(t *testing.T) {
	codec := NewCodec("test-secret-key")

	tokenStr, err := codec.Generate("user-id-123", time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// 末尾の1文字を書き換えて改ざんする
	tampered := []byte(tokenStr)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Decode(string(tampered))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Decode(tampered) error = %v, want ErrMalformed", err)
	}
}

func TestDecode_WrongKey_ReturnsErrMalformed(t *testing.T) {
	issuer := NewCodec("secret-a")
	verifier := NewCodec("secret-b")

	tokenStr, err := issuer.Generate("user-id-123", time.Now())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = verifier.Decode(tokenStr)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Decode with wrong key error = %v, want ErrMalformed", err)
	}
}

func TestDecode_DoesNotCheckExpiry(t *testing.T) {
	codec := NewCodec("test-secret-key")

	// 10年前に発行されたトークンでも復号自体は成功すること
	// （鮮度の判定は呼び出し側の責務）
	old := time.Now().Add(-10 * 365 * 24 * time.Hour)
	tokenStr, err := codec.Generate("user-id-123", old)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := codec.Decode(tokenStr)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if claims.Subject != "user-id-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-id-123")
	}
}
