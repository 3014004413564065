package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cafewifi/internal/models"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Toggle flips the favorite state for the (user, café) pair. A concurrent
// insert losing the race against the composite primary key surfaces as
// ErrDuplicate rather than a half-written row.
func (r *GORMFavoriteRepository) Toggle(userID, cafeID uint) (bool, error) {
	var favorited bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var fav models.Favorite
		err := tx.Where("user_id = ? AND cafe_id = ?", userID, cafeID).First(&fav).Error
		switch {
		case err == nil:
			if err := tx.Where("user_id = ? AND cafe_id = ?", userID, cafeID).
				Delete(&models.Favorite{}).Error; err != nil {
				return fmt.Errorf("failed to delete favorite: %w", err)
			}
			favorited = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Favorite{UserID: userID, CafeID: cafeID}).Error; err != nil {
				if isDuplicateError(err) {
					return fmt.Errorf("favorite for user %d and cafe %d: %w", userID, cafeID, ErrDuplicate)
				}
				return fmt.Errorf("failed to create favorite: %w", err)
			}
			favorited = true
			return nil
		default:
			return fmt.Errorf("failed to look up favorite: %w", err)
		}
	})
	return favorited, err
}

// CafesByUser returns every café joined through the user's favorite rows.
func (r *GORMFavoriteRepository) CafesByUser(userID uint) ([]models.Cafe, error) {
	var cafes []models.Cafe
	err := r.db.
		Joins("JOIN favorites ON favorites.cafe_id = cafes.id").
		Where("favorites.user_id = ?", userID).
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite cafes for user %d: %w", userID, err)
	}
	return cafes, nil
}

// CafeIDsByUser returns the café IDs the user has favorited.
func (r *GORMFavoriteRepository) CafeIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("cafe_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite cafe IDs for user %d: %w", userID, err)
	}
	return ids, nil
}
