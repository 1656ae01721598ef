package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/pkg/utils"
)

// LoginResult is a signed token plus who it was issued for.
type LoginResult struct {
	Token string
	Role  string
	User  *models.User
	Coach *models.Coach
}

// authUserStore is the slice of the user repository auth depends on; tests
// substitute a stub.
type authUserStore interface {
	Create(ctx context.Context, input repository.CreateUserInput) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByLineUserID(ctx context.Context, lineUserID string) (*models.User, error)
	EmailExistsExcluding(ctx context.Context, email, excludeUserID string) (bool, error)
	UpgradeGuest(ctx context.Context, userID string, input repository.CreateUserInput) (*models.User, error)
}

type authCoachStore interface {
	Create(ctx context.Context, input repository.CreateCoachInput) (*models.Coach, error)
	GetByEmail(ctx context.Context, email string) (*models.Coach, error)
}

// AuthService covers registration and login for users and coaches. Emails
// are unique across both tables, and registering with a LINE identity that
// already has a guest row upgrades that row instead of inserting a new one.
type AuthService struct {
	users     authUserStore
	coaches   authCoachStore
	jwtSecret string
}

func NewAuthService(users authUserStore, coaches authCoachStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, coaches: coaches, jwtSecret: jwtSecret}
}

func (s *AuthService) RegisterUser(ctx context.Context, input repository.CreateUserInput, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	input.UserType = models.UserTypeUser
	input.PasswordHash = hash

	if taken, err := s.emailTakenByCoach(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	// A LINE guest registering with the same identity claims its guest row.
	if input.LineUserID != nil && *input.LineUserID != "" {
		guest, err := s.users.GetByLineUserID(ctx, *input.LineUserID)
		if err == nil && guest.UserType == models.UserTypeGuest {
			exists, err := s.users.EmailExistsExcluding(ctx, input.Email, guest.UserID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return s.users.UpgradeGuest(ctx, guest.UserID, input)
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	return s.users.Create(ctx, input)
}

func (s *AuthService) RegisterCoach(ctx context.Context, input repository.CreateCoachInput, password string) (*models.Coach, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	input.PasswordHash = hash

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return s.coaches.Create(ctx, input)
}

// Login checks the users table first, then coaches, and issues a token with
// the matched role. A wrong password on either table falls through to the
// same generic failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if utils.CheckPassword(password, user.PasswordHash) {
			token, err := utils.GenerateToken(user.UserID, user.UserType, s.jwtSecret)
			if err != nil {
				return nil, err
			}
			return &LoginResult{Token: token, Role: user.UserType, User: user}, nil
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	coach, err := s.coaches.GetByEmail(ctx, email)
	if err == nil {
		if utils.CheckPassword(password, coach.PasswordHash) {
			token, err := utils.GenerateToken(coach.CoachID, models.UserTypeCoach, s.jwtSecret)
			if err != nil {
				return nil, err
			}
			return &LoginResult{Token: token, Role: models.UserTypeCoach, Coach: coach}, nil
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return nil, fmt.Errorf("%w: invalid email or password", ErrForbidden)
}

// LoginWithLine issues a token for an existing LINE-linked user.
func (s *AuthService) LoginWithLine(ctx context.Context, lineUserID string) (*LoginResult, error) {
	user, err := s.users.GetByLineUserID(ctx, lineUserID)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateToken(user.UserID, user.UserType, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.UserType, User: user}, nil
}

func (s *AuthService) emailTakenByCoach(ctx context.Context, email string) (bool, error) {
	_, err := s.coaches.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, err
}
