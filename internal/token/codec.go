// Package token は署名付きURLに埋め込むアクセストークンの符号化・復号を提供する。
// トークンはNaCl secretboxによる認証付き暗号で封緘され、URLセーフなbase64文字列になる。
// 有効期限の判定はここでは行わず、復号（完全性検証）と鮮度検証を分離する。
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

// ErrMalformed はトークンが復号・検証できないことを示す。
// base64不正、長さ不足、認証タグ不一致のいずれもこのエラーに分類する。
var ErrMalformed = errors.New("token: malformed or tampered token")

const nonceSize = 24

// Claims はトークンに封入されるペイロードを表す。
// 発行時刻はナノ秒精度で保持し、TTL境界の判定が秒未満の粒度でも成立するようにする。
type Claims struct {
	Subject  string `json:"sub"` // 対象ユーザーID
	IssuedAt int64  `json:"iat"` // 発行時刻（Unixナノ秒）
}

// IssuedTime は発行時刻をtime.Timeとして返す。
func (c *Claims) IssuedTime() time.Time {
	return time.Unix(0, c.IssuedAt)
}

// Codec はアクセストークンの生成と復号を行う。
// 鍵は起動時に設定シークレットから導出され、プロセス内で固定される。
type Codec struct {
	key [32]byte
}

// NewCodec は設定シークレットから鍵を導出してCodecを生成する。
// 発行側と検証側で同一のシークレットを使用すること。
func NewCodec(secret string) *Codec {
	return &Codec{key: sha256.Sum256([]byte(secret))}
}

// Generate は対象ユーザーIDと発行時刻を封入したトークン文字列を生成する。
// 出力はURLセーフで不透明な文字列であり、長さは固定されない。
// 副作用はなく、同一入力でもnonceにより毎回異なる文字列になる。
func (c *Codec) Generate(subjectID string, issuedAt time.Time) (string, error) {
	payload, err := json.Marshal(Claims{
		Subject:  subjectID,
		IssuedAt: issuedAt.UnixNano(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token claims: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// nonceを先頭に付与してからbox化したペイロードを連結する
	sealed := secretbox.Seal(nonce[:], payload, &nonce, &c.key)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode はトークン文字列を復号し、封入されたClaimsを返す。
// 復号・検証に失敗した場合はErrMalformedを返す。
// 有効期限の検証は行わない（呼び出し側が鮮度を判定する）。
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	raw, err := base64.RawURLEncoding.DecodeString(tokenStr)
	if err != nil {
		return nil, ErrMalformed
	}
	if len(raw) <= nonceSize {
		return nil, ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	payload, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, ErrMalformed
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}

	return claims, nil
}
