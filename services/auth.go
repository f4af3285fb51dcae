package services

import (
	"byway/dto"
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/logger"
	"byway/utils/notify"
	"byway/utils/token"
	"context"
	"strings"
	"time"
)

type AccountStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type TokenIssuer interface {
	Issue(claims token.Claims) (string, time.Time, error)
}

type RegisterResult struct {
	User    dto.UserDTO `json:"user"`
	Warning string      `json:"warning,omitempty"`
}

const (
	minPasswordLength = 6
	maxIdentityLength = 100
	welcomeWarning    = "Registration completed, but the welcome email could not be sent."
)

type AuthService struct {
	users    AccountStore
	hasher   PasswordHasher
	tokens   TokenIssuer
	notifier notify.Notifier
	log      *logger.Logger
}

func NewAuthService(users AccountStore, hasher PasswordHasher, tokens TokenIssuer, notifier notify.Notifier, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		log:      log.With("service", "AuthService"),
	}
}

func validateRegister(in dto.RegisterDTO) error {
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return apperr.Input("firstName", "First Name cannot be null or empty!")
	case strings.TrimSpace(in.LastName) == "":
		return apperr.Input("lastName", "Last Name cannot be null or empty!")
	case strings.TrimSpace(in.Username) == "":
		return apperr.Input("username", "Username cannot be null or empty!")
	case strings.TrimSpace(in.Email) == "":
		return apperr.Input("email", "Email cannot be null or empty!")
	case in.Password == "":
		return apperr.Input("password", "Password cannot be null or empty!")
	case strings.Contains(in.Username, "@"):
		return apperr.Input("username", "Invalid username format")
	case !strings.Contains(in.Email, "@") || !strings.Contains(in.Email, "."):
		return apperr.Input("email", "Invalid email format")
	case len(in.Password) < minPasswordLength:
		return apperr.Input("password", "Password must be at least 6 characters long!")
	case len(fullName(in)) > maxIdentityLength:
		return apperr.Input("name", "Name must be at most 100 characters long!")
	case len(strings.TrimSpace(in.Username)) > maxIdentityLength:
		return apperr.Input("username", "Username must be at most 100 characters long!")
	case len(strings.TrimSpace(in.Email)) > maxIdentityLength:
		return apperr.Input("email", "Email must be at most 100 characters long!")
	}
	return nil
}

func fullName(in dto.RegisterDTO) string {
	return strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName)
}

// Register creates a regular user account. The account is persisted before the welcome
// email goes out; a failed email is reported as a warning.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterDTO) (*RegisterResult, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if taken {
		return nil, apperr.Conflict("Email is already in use!")
	}
	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if taken {
		return nil, apperr.Conflict("Username is already in use!")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	user := &models.User{
		Name:           fullName(in),
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User registered", "user_id", user.ID, "username", user.Username)

	result := &RegisterResult{User: dto.FromUser(user)}
	subject, body := notify.WelcomeEmail(user.Name)
	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("Welcome email not sent", "user_id", user.ID, "error", err)
		result.Warning = welcomeWarning
	}
	return result, nil
}

// Login resolves identifier as an email when it contains "@" and as a username otherwise.
// An unknown account and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*dto.TokenDTO, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, apperr.Input("username", "Username or Email cannot be null or empty!")
	}
	if password == "" {
		return nil, apperr.Input("password", "Password cannot be null or empty!")
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetByEmail(ctx, identifier)
	} else {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.Debug("Login for unknown account", "identifier", identifier)
			return nil, apperr.Auth()
		}
		return nil, apperr.Unexpected(err)
	}
	if !s.hasher.Compare(user.HashedPassword, password) {
		s.log.Debug("Login with wrong password", "user_id", user.ID)
		return nil, apperr.Auth()
	}

	accessToken, expires, err := s.tokens.Issue(token.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role(),
	})
	if err != nil {
		s.log.Error("Token signing failed", "user_id", user.ID, "error", err)
		return nil, apperr.Unexpected(err)
	}
	return &dto.TokenDTO{AccessToken: accessToken, Expiration: expires}, nil
}
