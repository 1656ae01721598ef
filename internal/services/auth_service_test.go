package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/fairwaylab/swingcoach/internal/models"
	"github.com/fairwaylab/swingcoach/internal/repository"
	"github.com/fairwaylab/swingcoach/pkg/utils"
)

type stubUserStore struct {
	byEmail      *models.User
	byLineID     *models.User
	emailTaken   bool
	created      *repository.CreateUserInput
	upgradedID   string
	upgradedWith *repository.CreateUserInput
}

func (s *stubUserStore) Create(_ context.Context, input repository.CreateUserInput) (*models.User, error) {
	s.created = &input
	return &models.User{UserID: "user-new", UserType: input.UserType, Email: input.Email}, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.byEmail == nil {
		return nil, pgx.ErrNoRows
	}
	return s.byEmail, nil
}

func (s *stubUserStore) GetByLineUserID(_ context.Context, _ string) (*models.User, error) {
	if s.byLineID == nil {
		return nil, pgx.ErrNoRows
	}
	return s.byLineID, nil
}

func (s *stubUserStore) EmailExistsExcluding(_ context.Context, _, _ string) (bool, error) {
	return s.emailTaken, nil
}

func (s *stubUserStore) UpgradeGuest(_ context.Context, userID string, input repository.CreateUserInput) (*models.User, error) {
	s.upgradedID = userID
	s.upgradedWith = &input
	return &models.User{UserID: userID, UserType: models.UserTypeUser, Email: input.Email}, nil
}

type stubCoachStore struct {
	byEmail *models.Coach
	created *repository.CreateCoachInput
}

func (s *stubCoachStore) Create(_ context.Context, input repository.CreateCoachInput) (*models.Coach, error) {
	s.created = &input
	return &models.Coach{CoachID: "coach-new", Email: input.Email}, nil
}

func (s *stubCoachStore) GetByEmail(_ context.Context, _ string) (*models.Coach, error) {
	if s.byEmail == nil {
		return nil, pgx.ErrNoRows
	}
	return s.byEmail, nil
}

func TestRegisterUserRejectsCoachEmail(t *testing.T) {
	users := &stubUserStore{}
	coaches := &stubCoachStore{byEmail: &models.Coach{CoachID: "c1", Email: "taken@example.com"}}
	svc := NewAuthService(users, coaches, "secret")

	_, err := svc.RegisterUser(context.Background(),
		repository.CreateUserInput{Username: "u", Email: "taken@example.com"}, "password123")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for coach-owned email, got %v", err)
	}
	if users.created != nil {
		t.Error("no user row should be created on conflict")
	}
}

func TestRegisterUserCreatesWithHash(t *testing.T) {
	users := &stubUserStore{}
	svc := NewAuthService(users, &stubCoachStore{}, "secret")

	user, err := svc.RegisterUser(context.Background(),
		repository.CreateUserInput{Username: "u", Email: "new@example.com"}, "password123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.UserType != models.UserTypeUser {
		t.Errorf("expected usertype user, got %q", user.UserType)
	}
	if users.created == nil {
		t.Fatal("Create was not called")
	}
	if users.created.PasswordHash == "" || users.created.PasswordHash == "password123" {
		t.Error("password must be stored hashed")
	}
	if !utils.CheckPassword("password123", users.created.PasswordHash) {
		t.Error("stored hash does not verify the original password")
	}
}

func TestRegisterUserUpgradesLineGuest(t *testing.T) {
	lineID := "U12345"
	users := &stubUserStore{
		byLineID: &models.User{UserID: "guest-1", UserType: models.UserTypeGuest},
	}
	svc := NewAuthService(users, &stubCoachStore{}, "secret")

	user, err := svc.RegisterUser(context.Background(), repository.CreateUserInput{
		Username:   "u",
		Email:      "real@example.com",
		LineUserID: &lineID,
	}, "password123")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if users.upgradedID != "guest-1" {
		t.Errorf("expected guest row to be upgraded, got %q", users.upgradedID)
	}
	if users.upgradedWith == nil || users.upgradedWith.Email != "real@example.com" {
		t.Errorf("upgrade should carry the registration input, got %+v", users.upgradedWith)
	}
	if users.created != nil {
		t.Error("upgrade path must not insert a second row")
	}
	if user.UserType != models.UserTypeUser {
		t.Errorf("upgraded user should be a full user, got %q", user.UserType)
	}
}

func TestRegisterUserGuestUpgradeEmailConflict(t *testing.T) {
	lineID := "U12345"
	users := &stubUserStore{
		byLineID:   &models.User{UserID: "guest-1", UserType: models.UserTypeGuest},
		emailTaken: true,
	}
	svc := NewAuthService(users, &stubCoachStore{}, "secret")

	_, err := svc.RegisterUser(context.Background(), repository.CreateUserInput{
		Username:   "u",
		Email:      "other-owner@example.com",
		LineUserID: &lineID,
	}, "password123")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict when another row owns the email, got %v", err)
	}
}

func TestRegisterCoachRejectsUserEmail(t *testing.T) {
	users := &stubUserStore{byEmail: &models.User{UserID: "u1", Email: "taken@example.com"}}
	coaches := &stubCoachStore{}
	svc := NewAuthService(users, coaches, "secret")

	_, err := svc.RegisterCoach(context.Background(),
		repository.CreateCoachInput{CoachName: "c", Email: "taken@example.com"}, "password123")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for user-owned email, got %v", err)
	}
	if coaches.created != nil {
		t.Error("no coach row should be created on conflict")
	}
}

func TestLoginFallsThroughToCoach(t *testing.T) {
	hash, err := utils.HashPassword("coachpass")
	if err != nil {
		t.Fatal(err)
	}
	users := &stubUserStore{}
	coaches := &stubCoachStore{byEmail: &models.Coach{CoachID: "c1", Email: "c@example.com", PasswordHash: hash}}
	svc := NewAuthService(users, coaches, "secret")

	result, err := svc.Login(context.Background(), "c@example.com", "coachpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Role != models.UserTypeCoach || result.Coach == nil {
		t.Errorf("expected coach login, got role %q", result.Role)
	}

	claims, err := utils.ValidateToken(result.Token, "secret")
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != "c1" || claims.Role != models.UserTypeCoach {
		t.Errorf("token claims wrong: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("rightpass")
	if err != nil {
		t.Fatal(err)
	}
	users := &stubUserStore{byEmail: &models.User{UserID: "u1", UserType: models.UserTypeUser, PasswordHash: hash}}
	svc := NewAuthService(users, &stubCoachStore{}, "secret")

	if _, err := svc.Login(context.Background(), "u@example.com", "wrongpass"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
