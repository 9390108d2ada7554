package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification token failures. Expiry is reported distinctly so the
// verification page can tell the registrant to re-register.
var (
	ErrVerificationExpired = errors.New("verification token expired")
	ErrVerificationInvalid = errors.New("invalid verification token")
)

// VerificationClaims carries the registration payload inside the emailed
// verification link.
type VerificationClaims struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	jwt.RegisteredClaims
}

// VerificationService issues and validates email verification tokens.
type VerificationService struct {
	secret []byte
	ttl    time.Duration
}

// NewVerificationService creates a verification token service. The token
// lifetime is one hour per the registration contract.
func NewVerificationService(secret string, ttl time.Duration) *VerificationService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &VerificationService{secret: []byte(secret), ttl: ttl}
}

// Generate signs a verification token embedding the registration payload.
func (s *VerificationService) Generate(name, companyName, email, mobile string) (string, error) {
	claims := VerificationClaims{
		Name:        name,
		CompanyName: companyName,
		Email:       email,
		Mobile:      mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a verification token. Expired tokens return
// ErrVerificationExpired; any other failure returns ErrVerificationInvalid.
func (s *VerificationService) Validate(tokenString string) (*VerificationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VerificationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrVerificationInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrVerificationExpired
		}
		return nil, ErrVerificationInvalid
	}
	claims, ok := token.Claims.(*VerificationClaims)
	if !ok || !token.Valid {
		return nil, ErrVerificationInvalid
	}
	return claims, nil
}
