package access

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"employee-management-backend/config"
	"employee-management-backend/internal/model"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID     uint       `json:"user_id"`
	Username   string     `json:"username"`
	Role       model.Role `json:"role"`
	EmployeeID *uint      `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, now: time.Now}
}

// Issue signs a token for user. employeeID is the linked employee record, if any.
func (t *TokenIssuer) Issue(user *model.User, employeeID *uint) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies tokenString and returns the caller it identifies.
func (t *TokenIssuer) Parse(tokenString string) (*Caller, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized("invalid or expired token")
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, model.ErrUnauthorized("invalid token claims")
	}
	return &Caller{
		UserID:     claims.UserID,
		Username:   claims.Username,
		Role:       claims.Role,
		EmployeeID: claims.EmployeeID,
	}, nil
}
