package services

import (
	"errors"
	"fmt"

	"cafewifi/internal/models"
	"cafewifi/internal/repositories"
)

// CatalogService handles read access to the café directory.
type CatalogService struct {
	cafeRepo repositories.CafeRepository
	favRepo  repositories.FavoriteRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(cafeRepo repositories.CafeRepository, favRepo repositories.FavoriteRepository) *CatalogService {
	return &CatalogService{
		cafeRepo: cafeRepo,
		favRepo:  favRepo,
	}
}

// CafeListing is a café annotated with the viewing user's favorite state.
type CafeListing struct {
	models.Cafe
	Favorited bool
}

// CafeDetail is a café projected for the single-item view: the toilet, wifi
// and sockets flags get a human-readable yes/no label. CanTakeCalls is
// deliberately left as the raw boolean.
type CafeDetail struct {
	models.Cafe
	HasToiletLabel  string
	HasWifiLabel    string
	HasSocketsLabel string
}

// ListAll returns every café, each annotated with whether the viewer has
// favorited it. A nil viewer is an anonymous visitor and gets an empty
// favorite set.
func (s *CatalogService) ListAll(viewer *models.User) ([]CafeListing, error) {
	cafes, err := s.cafeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list cafes: %w", err)
	}

	favorited := make(map[uint]bool)
	if viewer != nil {
		ids, err := s.favRepo.CafeIDsByUser(viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load favorites for user %d: %w", viewer.ID, err)
		}
		for _, id := range ids {
			favorited[id] = true
		}
	}

	listings := make([]CafeListing, 0, len(cafes))
	for _, cafe := range cafes {
		listings = append(listings, CafeListing{Cafe: cafe, Favorited: favorited[cafe.ID]})
	}
	return listings, nil
}

// Search returns cafés whose location exactly matches the given label,
// together with the distinct set of known locations so callers can present
// valid choices. A non-matching location yields an empty slice, not an error.
func (s *CatalogService) Search(location string) ([]models.Cafe, []string, error) {
	locations, err := s.cafeRepo.Locations()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list locations: %w", err)
	}

	cafes, err := s.cafeRepo.GetByLocation(location)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search cafes: %w", err)
	}
	return cafes, locations, nil
}

// Popular returns cafés that have sockets, a toilet and wifi all at once.
// Call-friendliness is not part of the filter.
func (s *CatalogService) Popular() ([]models.Cafe, error) {
	cafes, err := s.cafeRepo.GetWithAmenities(true, true, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular cafes: %w", err)
	}
	return cafes, nil
}

// Get returns the café with the given ID projected for the detail view, or
// ErrNotFound if no such café exists.
func (s *CatalogService) Get(id uint) (*CafeDetail, error) {
	cafe, err := s.cafeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cafe %d: %w", id, err)
	}
	return &CafeDetail{
		Cafe:            *cafe,
		HasToiletLabel:  yesNo(cafe.HasToilet),
		HasWifiLabel:    yesNo(cafe.HasWifi),
		HasSocketsLabel: yesNo(cafe.HasSockets),
	}, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
