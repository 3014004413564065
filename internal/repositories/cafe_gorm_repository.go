package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cafewifi/internal/models"
)

// GORMCafeRepository is a GORM implementation of CafeRepository.
type GORMCafeRepository struct {
	db *gorm.DB
}

// NewGORMCafeRepository creates a new instance of GORMCafeRepository.
func NewGORMCafeRepository(db *gorm.DB) *GORMCafeRepository {
	return &GORMCafeRepository{
		db: db,
	}
}

// GetAll retrieves every café from the database.
func (r *GORMCafeRepository) GetAll() ([]models.Cafe, error) {
	var cafes []models.Cafe
	if err := r.db.Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all cafes: %w", err)
	}
	return cafes, nil
}

// GetByID retrieves a single café by its ID.
func (r *GORMCafeRepository) GetByID(id uint) (*models.Cafe, error) {
	var cafe models.Cafe
	if err := r.db.First(&cafe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cafe with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cafe by ID %d: %w", id, err)
	}
	return &cafe, nil
}

// GetByName retrieves a single café by its unique name.
func (r *GORMCafeRepository) GetByName(name string) (*models.Cafe, error) {
	var cafe models.Cafe
	if err := r.db.First(&cafe, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cafe named %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cafe by name %q: %w", name, err)
	}
	return &cafe, nil
}

// GetByLocation retrieves cafés whose location exactly matches.
func (r *GORMCafeRepository) GetByLocation(location string) ([]models.Cafe, error) {
	var cafes []models.Cafe
	if err := r.db.Where("location = ?", location).Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("failed to get cafes in location %q: %w", location, err)
	}
	return cafes, nil
}

// Locations returns the distinct location labels across all cafés.
func (r *GORMCafeRepository) Locations() ([]string, error) {
	var locations []string
	if err := r.db.Model(&models.Cafe{}).Distinct().Pluck("location", &locations).Error; err != nil {
		return nil, fmt.Errorf("failed to get cafe locations: %w", err)
	}
	return locations, nil
}

// GetWithAmenities retrieves cafés matching all three amenity flags at once.
func (r *GORMCafeRepository) GetWithAmenities(sockets, toilet, wifi bool) ([]models.Cafe, error) {
	var cafes []models.Cafe
	err := r.db.
		Where("has_sockets = ? AND has_toilet = ? AND has_wifi = ?", sockets, toilet, wifi).
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cafes by amenities: %w", err)
	}
	return cafes, nil
}

// Create inserts a new café in the database.
func (r *GORMCafeRepository) Create(cafe *models.Cafe) error {
	if err := r.db.Create(cafe).Error; err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("cafe named %q: %w", cafe.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create cafe: %w", err)
	}
	return nil
}
