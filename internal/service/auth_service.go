package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/mail"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and email verification. Failures
// surface as the 300-series AppError kinds so the client can present them
// uniformly.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. The account starts unverified; the
// returned user carries the verification token to redeem via VerifyEmail.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrEmptyFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, domain.ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrSignUpFailed.WithCause(err)
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, domain.ErrSignUpFailed.WithCause(err)
	}

	user := &domain.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hashedPassword),
		VerificationToken: token,
	}

	// The unique email index is the authority on duplicates; no separate
	// exists-check, so there is no race window to paper over.
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyInUse
		}
		return nil, domain.ErrSignUpFailed.WithCause(err)
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login authenticates a user and returns a signed JWT. Unverified accounts
// are rejected until their verification token has been redeemed.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrEmptyFields
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, domain.ErrSignInFailed.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrWrongPassword
	}

	if !user.EmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, domain.ErrSignInFailed.WithCause(err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

// VerifyEmail redeems a verification token.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.MarkEmailVerified(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound.WithDetail("No account matches this verification token")
		}
		return nil, domain.ErrSignUpFailed.WithCause(err)
	}
	user.PasswordHash = ""
	return user, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "endurafit",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
