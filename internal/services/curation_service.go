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

// checkboxChecked is the token a checked amenity checkbox submits. Any
// other value, including absence, means unchecked.
const checkboxChecked = "y"

// currencySymbol is prepended to every coffee price regardless of what the
// admin typed.
const currencySymbol = "£"

// CurationService handles the admin-only creation of café listings.
type CurationService struct {
	cafeRepo repositories.CafeRepository
	events   EventPublisher
}

// NewCurationService creates a new CurationService.
func NewCurationService(cafeRepo repositories.CafeRepository, events EventPublisher) *CurationService {
	return &CurationService{
		cafeRepo: cafeRepo,
		events:   events,
	}
}

// CreateCafeInput carries the submitted new-café fields. The amenity flags
// arrive as raw checkbox tokens and are normalized here, not at the form
// boundary, so the stored booleans never depend on the caller's encoding.
type CreateCafeInput struct {
	Name         string
	MapURL       string
	ImgURL       string
	Location     string
	Seats        string
	HasToilet    string
	HasSockets   string
	HasWifi      string
	CanTakeCalls string
	CoffeePrice  string
}

// CreateCafe inserts a new café listing. Only the administrator may call
// it: every other actor, including an anonymous one, gets ErrForbidden
// before any data access happens. A name collision returns ErrDuplicateName.
func (s *CurationService) CreateCafe(actor *models.User, input CreateCafeInput) (*models.Cafe, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if _, err := s.cafeRepo.GetByName(input.Name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing cafe: %w", err)
	}

	cafe := &models.Cafe{
		Name:         input.Name,
		MapURL:       input.MapURL,
		ImgURL:       input.ImgURL,
		Location:     input.Location,
		Seats:        input.Seats,
		HasToilet:    input.HasToilet == checkboxChecked,
		HasSockets:   input.HasSockets == checkboxChecked,
		HasWifi:      input.HasWifi == checkboxChecked,
		CanTakeCalls: input.CanTakeCalls == checkboxChecked,
		CoffeePrice:  currencySymbol + input.CoffeePrice,
	}
	if err := s.cafeRepo.Create(cafe); err != nil {
		// The pre-check can lose a race; the unique index has the last word.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create cafe: %w", err)
	}

	s.publishCreated(cafe)
	return cafe, nil
}

// publishCreated emits a cafe.created event. Best effort, like the
// favorite events: the listing is already stored.
func (s *CurationService) publishCreated(cafe *models.Cafe) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":    "cafe.created",
		"cafeID":   cafe.ID,
		"name":     cafe.Name,
		"location": cafe.Location,
	})
	if err != nil {
		log.Printf("Failed to marshal cafe event: %v", err)
		return
	}
	if err := s.events.Publish("", rabbitmq.CafeEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish cafe created event for %q: %v", cafe.Name, err)
	}
}
