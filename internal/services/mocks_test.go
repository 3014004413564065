package services_test

import (
	"github.com/stretchr/testify/mock"

	"cafewifi/internal/models"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockCafeRepository is a mock implementation of repositories.CafeRepository.
type MockCafeRepository struct {
	mock.Mock
}

func (m *MockCafeRepository) GetAll() ([]models.Cafe, error) {
	args := m.Called()
	return args.Get(0).([]models.Cafe), args.Error(1)
}

func (m *MockCafeRepository) GetByID(id uint) (*models.Cafe, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cafe), args.Error(1)
}

func (m *MockCafeRepository) GetByName(name string) (*models.Cafe, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cafe), args.Error(1)
}

func (m *MockCafeRepository) GetByLocation(location string) ([]models.Cafe, error) {
	args := m.Called(location)
	return args.Get(0).([]models.Cafe), args.Error(1)
}

func (m *MockCafeRepository) Locations() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCafeRepository) GetWithAmenities(sockets, toilet, wifi bool) ([]models.Cafe, error) {
	args := m.Called(sockets, toilet, wifi)
	return args.Get(0).([]models.Cafe), args.Error(1)
}

func (m *MockCafeRepository) Create(cafe *models.Cafe) error {
	args := m.Called(cafe)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of repositories.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Toggle(userID, cafeID uint) (bool, error) {
	args := m.Called(userID, cafeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) CafesByUser(userID uint) ([]models.Cafe, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Cafe), args.Error(1)
}

func (m *MockFavoriteRepository) CafeIDsByUser(userID uint) ([]uint, error) {
	args := m.Called(userID)
	return args.Get(0).([]uint), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}
