package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/middleware"
	"cafewifi/internal/services"
)

// FavoritesHandler handles the favorites list and toggle routes.
type FavoritesHandler struct {
	favorites *services.FavoritesService
	store     *session.Store
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favorites *services.FavoritesService, store *session.Store) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		store:     store,
	}
}

// RegisterRoutes registers the favorites routes with the Fiber app. All of
// them require an authenticated session.
func (h *FavoritesHandler) RegisterRoutes(router fiber.Router) {
	loginRequired := middleware.LoginRequired(h.store)
	router.Get("/favorites", loginRequired, h.HandleFavorites)
	router.Get("/favorite/:id", loginRequired, h.HandleToggle)
	router.Post("/favorite/:id", loginRequired, h.HandleToggle)
}

// HandleFavorites lists the current user's favorited cafés.
func (h *FavoritesHandler) HandleFavorites(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cafes, err := h.favorites.ListFavorites(user.ID)
	if err != nil {
		log.Printf("Error listing favorites for user %d: %v", user.ID, err)
		return fiber.ErrInternalServerError
	}
	return c.Render("favorites", viewData(c, h.store, fiber.Map{
		"Heading":    fmt.Sprintf("%s's Favorite Cafes!", user.FirstName),
		"Subheading": "Below are your favorite cafes you've found!",
		"Cafes":      cafes,
	}))
}

// HandleToggle flips the favorite state for the current user and the given
// café, then sends the visitor back to the page they came from.
func (h *FavoritesHandler) HandleToggle(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cafeID, err := parseID(c, "id")
	if err != nil {
		return notFound(c, h.store)
	}

	if _, err := h.favorites.Toggle(user.ID, cafeID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, h.store)
		}
		log.Printf("Error toggling favorite for user %d cafe %d: %v", user.ID, cafeID, err)
		return fiber.ErrInternalServerError
	}
	return backTo(c)
}
