package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/middleware"
)

// viewData builds the base view-model every template expects (identity,
// admin flag, pending flash) and merges the page-specific values on top.
func viewData(c *fiber.Ctx, store *session.Store, page fiber.Map) fiber.Map {
	user := middleware.CurrentUser(c)
	data := fiber.Map{
		"LoggedIn":    user != nil,
		"CurrentUser": user,
		"IsAdmin":     user.IsAdmin(),
	}
	if flash := middleware.TakeFlash(c, store); flash != "" {
		data["Flash"] = flash
	}
	for key, value := range page {
		data[key] = value
	}
	return data
}

// validationMessages turns a validator error into a field → message map for
// re-rendering the form.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
	} else {
		messages["Form"] = "Invalid form submission"
	}
	return messages
}

// backTo redirects to the referring page, falling back to the home page
// when no referrer was sent.
func backTo(c *fiber.Ctx) error {
	referer := c.Get(fiber.HeaderReferer)
	if referer == "" {
		referer = "/"
	}
	return c.Redirect(referer)
}

// parseID parses a numeric route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return uint(id), nil
}

// notFound renders the standard not-found page.
func notFound(c *fiber.Ctx, store *session.Store) error {
	return c.Status(fiber.StatusNotFound).Render("404", viewData(c, store, nil))
}
