package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"cafewifi/internal/models"
	"cafewifi/internal/repositories"
	"cafewifi/pkg/rabbitmq"
)

// FavoritesService handles a user's favorite relationship to cafés.
type FavoritesService struct {
	favRepo  repositories.FavoriteRepository
	cafeRepo repositories.CafeRepository
	events   EventPublisher
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(favRepo repositories.FavoriteRepository, cafeRepo repositories.CafeRepository, events EventPublisher) *FavoritesService {
	return &FavoritesService{
		favRepo:  favRepo,
		cafeRepo: cafeRepo,
		events:   events,
	}
}

// ListFavorites returns every café the user has favorited.
func (s *FavoritesService) ListFavorites(userID uint) ([]models.Cafe, error) {
	cafes, err := s.favRepo.CafesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %d: %w", userID, err)
	}
	return cafes, nil
}

// Toggle flips the favorite state for the (user, café) pair and reports the
// resulting state. The café must exist; an unknown ID returns ErrNotFound.
// Calling Toggle twice in succession restores the original state.
func (s *FavoritesService) Toggle(userID, cafeID uint) (bool, error) {
	if _, err := s.cafeRepo.GetByID(cafeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to check cafe %d: %w", cafeID, err)
	}

	favorited, err := s.favRepo.Toggle(userID, cafeID)
	if err != nil {
		// A concurrent toggle won the insert; the pair is favorited either
		// way, and that state change still gets its event.
		if errors.Is(err, repositories.ErrDuplicate) {
			s.publishToggled(userID, cafeID, true)
			return true, nil
		}
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.publishToggled(userID, cafeID, favorited)
	return favorited, nil
}

// publishToggled emits a favorite.toggled event. Publishing is best effort:
// a broker failure must not fail the toggle itself.
func (s *FavoritesService) publishToggled(userID, cafeID uint, favorited bool) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":     "favorite.toggled",
		"userID":    userID,
		"cafeID":    cafeID,
		"favorited": favorited,
	})
	if err != nil {
		log.Printf("Failed to marshal favorite event: %v", err)
		return
	}
	if err := s.events.Publish("", rabbitmq.CafeEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish favorite event for user %d cafe %d: %v", userID, cafeID, err)
	}
}
