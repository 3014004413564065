package repositories

import "cafewifi/internal/models"

// FavoriteRepository defines the interface for favorite data access.
type FavoriteRepository interface {
	// Toggle flips the favorite state for the (user, café) pair and reports
	// the resulting state: true when the pair is now favorited. The whole
	// read-modify-write runs inside one transaction.
	Toggle(userID, cafeID uint) (bool, error)
	// CafesByUser returns every café the user has favorited.
	CafesByUser(userID uint) ([]models.Cafe, error)
	// CafeIDsByUser returns the IDs of every café the user has favorited.
	CafeIDsByUser(userID uint) ([]uint, error)
}
