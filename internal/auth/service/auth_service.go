package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akarpovich/notes-service/internal/common/crypto"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/observability/metrics"
	userdomain "github.com/akarpovich/notes-service/internal/user/domain"
	userservice "github.com/akarpovich/notes-service/internal/user/service"
)

// AuthService owns the credential lifecycle: hashing on registration,
// verification on login, and claim minting. The user service stays ignorant
// of the hashing algorithm.
type AuthService struct {
	users     userservice.Service
	hasher    crypto.PasswordHasher
	idGen     crypto.IDGenerator
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
	log       *logger.Logger
}

func NewAuthService(
	users userservice.Service,
	hasher crypto.PasswordHasher,
	idGen crypto.IDGenerator,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		idGen:     idGen,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
}

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userservice.UserResponse, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_exists_check_failed",
		}).Errorf("register failed: %v", err)
		return userservice.UserResponse{}, err
	}
	if exists {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already exists")
		return userservice.UserResponse{}, commonerrors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userservice.UserResponse{}, commonerrors.ErrInternal.WithCause(err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return userservice.UserResponse{}, commonerrors.ErrInternal.WithCause(err)
	}

	now := s.now()
	profile, err := s.users.CreateUser(ctx, userdomain.User{
		ID:           id,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         userdomain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userservice.UserResponse{}, err
	}

	metrics.UsersRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   input.Email,
		"user_id": profile.ID.String(),
		"action":  "register_success",
	}).Info("register success")

	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			metrics.LoginFailures.WithLabelValues("unknown_email").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: unknown email")
			return LoginResult{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginFailures.WithLabelValues("password_mismatch").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return LoginResult{}, commonerrors.ErrPasswordMismatch
	}

	token, err := s.issueToken(user.ID.String())
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": user.ID.String(),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, commonerrors.ErrInternal.WithCause(err)
	}

	metrics.TokensIssued.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   input.Email,
		"user_id": user.ID.String(),
		"action":  "login_success",
	}).Info("login success")

	return LoginResult{Token: token, ExpiresIn: s.tokenTTL}, nil
}

// issueToken mints the claim set {sub, iat, exp = now + TTL}.
func (s *AuthService) issueToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
