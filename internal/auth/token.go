package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/salonova/booking-api/internal/config"
	domain "github.com/salonova/booking-api/internal/domain/booking"
)

// Claims is the decoded token payload. The declared role and subject are
// hints only; the access guard re-resolves them against the credential
// store on every request.
type Claims struct {
	SubjectID uint
	Role      domain.Role
	SalonID   *uint
	JTI       string
	ExpiresAt time.Time
}

// GenerateToken issues an HS256 token for a resolved principal. Every
// token carries a unique jti so it can be revoked individually.
func GenerateToken(cfg *config.Config, p *domain.Principal) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  float64(p.ID),
		"role": string(p.Role),
		"jti":  uuid.NewString(),
		"exp":  now.Add(cfg.TokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if p.SalonID != nil {
		claims["salonId"] = float64(*p.SalonID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken verifies signature and expiry and decodes the payload.
func ParseToken(cfg *config.Config, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, okSub := mapClaims["sub"].(float64)
	role, okRole := mapClaims["role"].(string)
	exp, okExp := mapClaims["exp"].(float64)
	if !okSub || !okRole || !okExp {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims := &Claims{
		SubjectID: uint(sub),
		Role:      domain.Role(role),
		ExpiresAt: time.Unix(int64(exp), 0),
	}

	if jti, ok := mapClaims["jti"].(string); ok {
		claims.JTI = jti
	}
	if salonID, ok := mapClaims["salonId"].(float64); ok {
		id := uint(salonID)
		claims.SalonID = &id
	}

	return claims, nil
}
