package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/cryptox"
	"github.com/dmitrijs2005/listkeeper/internal/server/auth"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRegexp    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	limiter               *auth.LoginLimiter
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, limiter *auth.LoginLimiter, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		limiter:               limiter,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

func (s *UserService) validateRegistration(username, email, password string) error {
	if !usernameRegexp.MatchString(username) {
		return common.NewValidationError("username", "must be 3-30 characters (letters, numbers and _ only)")
	}
	if !emailRegexp.MatchString(email) {
		return common.NewValidationError("email", "invalid email format")
	}
	if len(password) < 6 {
		return common.NewValidationError("password", "must be at least 6 characters")
	}
	return nil
}

// Register validates the credentials, rejects taken usernames/emails and
// stores the new user with a password digest. A fresh token is returned so
// registration also logs the user in.
func (s *UserService) Register(ctx context.Context, username string, email string, password string) (*models.User, string, error) {

	if err := s.validateRegistration(username, email, password); err != nil {
		return nil, "", err
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	if exists {
		return nil, "", common.ErrorAlreadyExists
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %v", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials for email, throttled per clientKey. A locked
// out key gets RateLimitError without touching the store; a failed attempt is
// recorded; a successful one clears the key and returns a fresh token.
//
// Unknown email and wrong password are deliberately indistinguishable.
func (s *UserService) Login(ctx context.Context, clientKey string, email string, password string) (*models.User, string, error) {

	if retryAfter, ok := s.limiter.Check(clientKey); !ok {
		return nil, "", &common.RateLimitError{RetryAfter: retryAfter}
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.limiter.RecordFailure(clientKey)
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		s.limiter.RecordFailure(clientKey)
		return nil, "", common.ErrorUnauthorized
	}

	s.limiter.Reset(clientKey)

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", err
	}
	return token, nil
}
