package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"cafewifi/internal/models"
	"cafewifi/internal/repositories"
)

// AccountService handles registration, login and session identity lookup.
type AccountService struct {
	userRepo repositories.UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repositories.UserRepository) *AccountService {
	return &AccountService{
		userRepo: userRepo,
	}
}

// RegisterInput carries the validated registration fields. The
// password/confirm equality check happens at the form boundary, so only the
// password itself reaches the service.
type RegisterInput struct {
	FirstName string
	Email     string
	Password  string
}

// Register creates a new account with a bcrypt-hashed password and returns
// it. The first account ever registered becomes the administrator. Returns
// ErrDuplicateAccount when the email is already taken.
func (s *AccountService) Register(input RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:     input.Email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		// Lost a race against a concurrent registration for the same email.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	return user, nil
}

// Login authenticates an account by email and password. It distinguishes an
// unknown email (ErrAccountNotFound) from a failed password check
// (ErrInvalidCredential) so the caller can surface different messages.
func (s *AccountService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// LoadIdentity resolves a session's stored identifier back to its account.
// Returns ErrNotFound when the identifier no longer exists.
func (s *AccountService) LoadIdentity(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load identity %d: %w", id, err)
	}
	return user, nil
}
