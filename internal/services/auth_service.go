package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"apexmotors/internal/domain"
	"apexmotors/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

const (
	bcryptCost = 10
	tokenTTL   = time.Hour
)

type AuthService struct {
	Accounts *repos.AccountRepo
	Secret   []byte
}

func NewAuthService(accounts *repos.AccountRepo, secret string) *AuthService {
	return &AuthService{Accounts: accounts, Secret: []byte(secret)}
}

// identityClaims embeds the non-secret account fields in the signed cookie.
type identityClaims struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Type      string `json:"account_type"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(first, last, email, password string) (int64, error) {
	taken, err := s.Accounts.EmailExists(email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, err
	}
	return s.Accounts.Register(first, last, email, string(hash))
}

// Login verifies credentials. A missing account and a hash mismatch are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*domain.Account, error) {
	a, err := s.Accounts.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	a.Hash = ""
	return a, nil
}

// IssueToken signs the account identity with a fixed expiry. Callers reissue
// after profile or password updates so the cookie reflects current fields.
func (s *AuthService) IssueToken(a *domain.Account) (string, error) {
	now := time.Now()
	claims := identityClaims{
		FirstName: a.FirstName,
		Email:     a.Email,
		Type:      a.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ParseToken verifies a cookie value and rebuilds the request identity.
func (s *AuthService) ParseToken(raw string) (*domain.Account, error) {
	var claims identityClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadCreds
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id < 1 {
		return nil, ErrBadCreds
	}
	return &domain.Account{
		ID:        id,
		FirstName: claims.FirstName,
		Email:     claims.Email,
		Type:      claims.Type,
	}, nil
}

func (s *AuthService) Account(id int64) (*domain.Account, error) {
	return s.Accounts.ByID(id)
}

// UpdateProfile changes the editable fields; the caller reissues the token
// from the returned fresh row.
func (s *AuthService) UpdateProfile(id int64, first, last, email string) (*domain.Account, error) {
	taken, err := s.Accounts.EmailExists(email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	if err := s.Accounts.UpdateProfile(id, first, last, email); err != nil {
		return nil, err
	}
	a, err := s.Accounts.ByID(id)
	if err != nil {
		return nil, err
	}
	a.Hash = ""
	return a, nil
}

func (s *AuthService) ChangePassword(id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	return s.Accounts.UpdatePassword(id, string(hash))
}
