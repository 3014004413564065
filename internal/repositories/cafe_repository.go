package repositories

import "cafewifi/internal/models"

// CafeRepository defines the interface for café data access.
type CafeRepository interface {
	GetAll() ([]models.Cafe, error)
	GetByID(id uint) (*models.Cafe, error)
	GetByName(name string) (*models.Cafe, error)
	GetByLocation(location string) ([]models.Cafe, error)
	// Locations returns the distinct set of location labels across all cafés.
	Locations() ([]string, error)
	// GetWithAmenities returns cafés whose sockets, toilet and wifi flags
	// all equal the given values.
	GetWithAmenities(sockets, toilet, wifi bool) ([]models.Cafe, error)
	Create(cafe *models.Cafe) error
}
