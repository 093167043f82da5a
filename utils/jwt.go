package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa firma inválida, token vencido o mal formado
var ErrInvalidToken = errors.New("invalid token")

// UserClaims es la identidad que viaja dentro del token
type UserClaims struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Claims es la estructura de los datos que guardamos EN el token
type Claims struct {
	User UserClaims `json:"user"`
	jwt.RegisteredClaims
}

// JWTManager firma y valida tokens con un secreto compartido (HS256)
type JWTManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTManager crea un JWTManager con el secreto y la duración de los tokens
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// GenerateToken genera un nuevo token para el usuario
func (m *JWTManager) GenerateToken(user UserClaims) (string, error) {
	now := m.now()
	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken valida firma y vencimiento y retorna los claims
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.User.Username == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
