package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kikennmodsett-of-git/kikennmodsett/config"
)

var (
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("无效或已过期的令牌")
	// ErrEmptyName 昵称为空
	ErrEmptyName = errors.New("昵称不能为空")
)

// MaxNameLength 昵称最大字符数
const MaxNameLength = 16

// Claims 游客令牌内容
type Claims struct {
	PlayerID string `json:"pid"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer 签发和校验游客令牌
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewIssuer 创建签发器
func NewIssuer(cfg config.AuthConfig) *Issuer {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Guest 为新游客生成玩家ID并签发令牌
func (i *Issuer) Guest(name string) (string, Claims, error) {
	return i.Issue(uuid.NewString(), name)
}

// Issue 为已有玩家签发令牌
func (i *Issuer) Issue(playerID, name string) (string, Claims, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", Claims{}, err
	}

	now := i.now()
	claims := Claims{
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("签名令牌失败: %w", err)
	}
	return signed, claims, nil
}

// Parse 校验令牌并返回内容
func (i *Issuer) Parse(tokenString string) (Claims, error) {
	var claims Claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.PlayerID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// NormalizeName 去掉首尾空白并截断昵称
func NormalizeName(name string) (string, error) {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return "", ErrEmptyName
	}
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return string(runes), nil
}
