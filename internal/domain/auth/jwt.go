package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
)

// Claims is the JWT payload for portal sessions.
type Claims struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	Role          string `json:"role"`
	DistributorID string `json:"distributor_id,omitempty"`
	VendorID      string `json:"vendor_id,omitempty"`
	IsAdmin       bool   `json:"is_admin,omitempty"`
}

// JWTService signs and validates session tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a token service. ttl defaults to 24h when zero.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for a user.
func (s *JWTService) Generate(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email:         user.Email,
		Role:          user.Role,
		DistributorID: user.DistributorID.String(),
		IsAdmin:       user.IsAdmin,
	}
	if user.VendorID != nil {
		claims.VendorID = user.VendorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses a token and returns the request-scoped user view.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.NewUnauthorized("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid token claims")
	}

	return &appctx.UserContext{
		UserID:        claims.Subject,
		Email:         claims.Email,
		Role:          claims.Role,
		DistributorID: claims.DistributorID,
		VendorID:      claims.VendorID,
		IsAdmin:       claims.IsAdmin,
	}, nil
}
