package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/justsurfingit/job-board/internal/models"
)

var ErrInvalidToken = errors.New("invalid session token")

type TokenService interface {
	Issue(p Principal) (string, error)
	Parse(raw string) (*Principal, error)
	TTL() time.Duration
}

type Claims struct {
	Role      string `json:"role"`
	StudentID uint   `json:"student_id,omitempty"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService signs session tokens with HS256.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *JWTService) TTL() time.Duration { return s.ttl }

func (s *JWTService) Issue(p Principal) (string, error) {
	now := s.now()
	claims := Claims{
		Role:      string(p.Role),
		StudentID: p.StudentID,
		Email:     p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(p.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Parse(raw string) (*Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalidToken
	}
	role := models.Role(claims.Role)
	if role != models.RoleAdmin && role != models.RoleStudent {
		return nil, ErrInvalidToken
	}
	return &Principal{
		UserID:    uint(userID),
		Role:      role,
		StudentID: claims.StudentID,
		Email:     claims.Email,
	}, nil
}
