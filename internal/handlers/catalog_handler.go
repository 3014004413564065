package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/middleware"
	"cafewifi/internal/services"
)

// CatalogHandler handles the public café directory pages.
type CatalogHandler struct {
	catalog *services.CatalogService
	store   *session.Store
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, store *session.Store) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		store:   store,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/about", h.HandleAbout)
	router.Get("/search", h.HandleSearch)
	router.Post("/search", h.HandleSearch)
	router.Get("/popular", h.HandlePopular)
	router.Get("/cafe/:id", h.HandleCafe)
}

// HandleHome lists every café, annotated with the visitor's favorites.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	listings, err := h.catalog.ListAll(middleware.CurrentUser(c))
	if err != nil {
		log.Printf("Error listing cafes: %v", err)
		return fiber.ErrInternalServerError
	}
	return c.Render("index", viewData(c, h.store, fiber.Map{
		"Heading":    "Free WiFi, great Coffee!",
		"Subheading": "These cafes offer free Wi-Fi for any customer that orders a coffee!",
		"Cafes":      listings,
	}))
}

// HandleAbout renders the static about page.
func (h *CatalogHandler) HandleAbout(c *fiber.Ctx) error {
	return c.Render("about", viewData(c, h.store, nil))
}

// HandleSearch renders the location search. A location matching nothing is
// an empty result list, never an error.
func (h *CatalogHandler) HandleSearch(c *fiber.Ctx) error {
	location := c.FormValue("location")
	cafes, locations, err := h.catalog.Search(location)
	if err != nil {
		log.Printf("Error searching cafes: %v", err)
		return fiber.ErrInternalServerError
	}
	return c.Render("search", viewData(c, h.store, fiber.Map{
		"Heading":    "Search your favorite area!",
		"Subheading": "Limited to these select areas.",
		"Cafes":      cafes,
		"Locations":  locations,
		"Location":   location,
	}))
}

// HandlePopular lists cafés that have sockets, a toilet and wifi.
func (h *CatalogHandler) HandlePopular(c *fiber.Ctx) error {
	cafes, err := h.catalog.Popular()
	if err != nil {
		log.Printf("Error listing popular cafes: %v", err)
		return fiber.ErrInternalServerError
	}
	listings := make([]services.CafeListing, 0, len(cafes))
	for _, cafe := range cafes {
		listings = append(listings, services.CafeListing{Cafe: cafe})
	}
	return c.Render("index", viewData(c, h.store, fiber.Map{
		"Heading":    "Popular Cafes",
		"Subheading": "These cafes offer free Wi-Fi, have sockets for charging, and have a bathroom!",
		"Cafes":      listings,
	}))
}

// HandleCafe renders a single café's detail page, 404 if it doesn't exist.
func (h *CatalogHandler) HandleCafe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c, h.store)
	}

	cafe, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, h.store)
		}
		log.Printf("Error getting cafe %d: %v", id, err)
		return fiber.ErrInternalServerError
	}
	return c.Render("cafe", viewData(c, h.store, fiber.Map{
		"Cafe": cafe,
	}))
}
