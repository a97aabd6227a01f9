package auth

import (
	"errors"
	"fmt"
	"time"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carrega userId e email, os mesmos campos que o frontend já conhece.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager emite e valida tokens HS256.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required but was empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT ttl must be positive, got %s", ttl)
	}

	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock troca o relógio usado na emissão e na validação.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	return &TokenManager{secret: tm.secret, ttl: tm.ttl, now: now}
}

func (tm *TokenManager) Generate(user entities.User) (string, error) {
	issuedAt := tm.now()

	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("TokenManager.Generate - failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate devolve domain.ErrInvalidToken para qualquer token malformado, expirado
// ou assinado com outra chave ou algoritmo.
func (tm *TokenManager) Validate(tokenString string) (domain.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: bad userId claim", domain.ErrInvalidToken)
	}

	return domain.Principal{UserID: userID, Email: claims.Email}, nil
}
