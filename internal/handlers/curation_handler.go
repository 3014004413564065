package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/middleware"
	"cafewifi/internal/services"
)

// CurationHandler handles the admin-only new-café form.
type CurationHandler struct {
	curation *services.CurationService
	store    *session.Store
	validate *validator.Validate
}

// NewCurationHandler creates a new CurationHandler.
func NewCurationHandler(curation *services.CurationService, store *session.Store) *CurationHandler {
	return &CurationHandler{
		curation: curation,
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the curation routes with the Fiber app. The
// admin gate runs before any form handling.
func (h *CurationHandler) RegisterRoutes(router fiber.Router) {
	adminRequired := middleware.AdminRequired(h.store)
	router.Get("/add", adminRequired, h.ShowAdd)
	router.Post("/add", adminRequired, h.HandleAdd)
}

// AddCafeForm is the typed new-café form. The amenity checkboxes submit a
// bare token ("y" when checked, absent otherwise) and stay strings here;
// the curation service normalizes them to booleans.
type AddCafeForm struct {
	Name         string `form:"name" validate:"required"`
	MapURL       string `form:"map_url" validate:"required,url"`
	ImgURL       string `form:"img_url" validate:"required,url"`
	Location     string `form:"location" validate:"required"`
	Seats        string `form:"seats" validate:"required"`
	HasToilet    string `form:"has_toilet"`
	HasSockets   string `form:"has_sockets"`
	HasWifi      string `form:"has_wifi"`
	CanTakeCalls string `form:"can_take_calls"`
	CoffeePrice  string `form:"coffee_price" validate:"required"`
}

// ShowAdd renders the new-café form.
func (h *CurationHandler) ShowAdd(c *fiber.Ctx) error {
	return c.Render("add", viewData(c, h.store, nil))
}

// HandleAdd validates and stores a new café listing. A duplicate name comes
// back as a field-level error on the re-rendered form.
func (h *CurationHandler) HandleAdd(c *fiber.Ctx) error {
	var form AddCafeForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing add-cafe form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("add", viewData(c, h.store, fiber.Map{
			"Errors": map[string]string{"Form": "Invalid form submission"},
		}))
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("add", viewData(c, h.store, fiber.Map{
			"Errors": validationMessages(err),
			"Form":   form,
		}))
	}

	cafe, err := h.curation.CreateCafe(middleware.CurrentUser(c), services.CreateCafeInput{
		Name:         form.Name,
		MapURL:       form.MapURL,
		ImgURL:       form.ImgURL,
		Location:     form.Location,
		Seats:        form.Seats,
		HasToilet:    form.HasToilet,
		HasSockets:   form.HasSockets,
		HasWifi:      form.HasWifi,
		CanTakeCalls: form.CanTakeCalls,
		CoffeePrice:  form.CoffeePrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateName):
			return c.Status(fiber.StatusConflict).Render("add", viewData(c, h.store, fiber.Map{
				"Errors": map[string]string{"Name": "A cafe with this name already exists."},
				"Form":   form,
			}))
		case errors.Is(err, services.ErrForbidden):
			// The route gate should have caught this already.
			return c.Status(fiber.StatusForbidden).Render("403", viewData(c, h.store, nil))
		default:
			log.Printf("Error creating cafe: %v", err)
			return fiber.ErrInternalServerError
		}
	}

	middleware.SetFlash(c, h.store, "Added "+cafe.Name+".")
	return c.Redirect("/")
}
