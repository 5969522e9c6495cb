package service

import (
	"errors"
	"relay-server/internal/domain"
)

// UserService provides the credential gateway over the user repository.
// Credentials are compared exactly as stored; hashing and sessions are
// deliberately absent from this service's contract.
type UserService struct {
	userRepo IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account.
func (s *UserService) Register(userID, password string) (*domain.User, error) {
	if userID == "" || password == "" {
		return nil, errors.New("userId and password are required")
	}

	newUser := &domain.User{ID: userID, Password: password}
	if err := s.userRepo.CreateUser(newUser); err != nil {
		return nil, err // Propagates domain.ErrDuplicateUser when the id is taken
	}

	return newUser, nil
}

// Login authenticates an account. An unknown user and a wrong password both
// come back as domain.ErrInvalidCredentials.
func (s *UserService) Login(userID, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByCredentials(userID, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
