package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/middleware"
	"cafewifi/internal/services"
)

// AccountHandler handles registration, login and logout.
type AccountHandler struct {
	accounts *services.AccountService
	store    *session.Store
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *services.AccountService, store *session.Store) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.ShowRegister)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.ShowLogin)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", middleware.LoginRequired(h.store), h.HandleLogout)
}

// RegisterForm is the typed registration form. Confirm must equal Password;
// the check lives here at the form boundary, not in the service.
type RegisterForm struct {
	FirstName string `form:"first_name" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required"`
	Confirm   string `form:"confirm" validate:"required,eqfield=Password"`
}

// LoginForm is the typed login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ShowRegister renders the registration form.
func (h *AccountHandler) ShowRegister(c *fiber.Ctx) error {
	return c.Render("register", viewData(c, h.store, nil))
}

// HandleRegister creates a new account and signs it in. A duplicate email
// flashes a message and sends the visitor to the login page instead.
func (h *AccountHandler) HandleRegister(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("register", viewData(c, h.store, fiber.Map{
			"Errors": map[string]string{"Form": "Invalid form submission"},
		}))
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("register", viewData(c, h.store, fiber.Map{
			"Errors": validationMessages(err),
			"Form":   form,
		}))
	}

	user, err := h.accounts.Register(services.RegisterInput{
		FirstName: form.FirstName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			middleware.SetFlash(c, h.store, "You've already signed up with that account. Please log in.")
			return c.Redirect("/login")
		}
		log.Printf("Error registering account: %v", err)
		return fiber.ErrInternalServerError
	}

	if err := h.signIn(c, user.ID); err != nil {
		log.Printf("Error establishing session: %v", err)
		return fiber.ErrInternalServerError
	}
	return c.Redirect("/")
}

// ShowLogin renders the login form.
func (h *AccountHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", viewData(c, h.store, nil))
}

// HandleLogin authenticates an account. Unknown email and wrong password
// surface as distinct flash messages on the re-rendered form.
func (h *AccountHandler) HandleLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("login", viewData(c, h.store, fiber.Map{
			"Errors": map[string]string{"Form": "Invalid form submission"},
		}))
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("login", viewData(c, h.store, fiber.Map{
			"Errors": validationMessages(err),
			"Form":   form,
		}))
	}

	user, err := h.accounts.Login(form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.Render("login", viewData(c, h.store, fiber.Map{
				"Flash": "Email not found.",
				"Form":  form,
			}))
		case errors.Is(err, services.ErrInvalidCredential):
			return c.Render("login", viewData(c, h.store, fiber.Map{
				"Flash": "Incorrect Password.",
				"Form":  form,
			}))
		default:
			log.Printf("Error during login for %s: %v", form.Email, err)
			return fiber.ErrInternalServerError
		}
	}

	if err := h.signIn(c, user.ID); err != nil {
		log.Printf("Error establishing session: %v", err)
		return fiber.ErrInternalServerError
	}
	return c.Redirect("/")
}

// HandleLogout tears down the session.
func (h *AccountHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return c.Redirect("/")
}

// signIn stores the authenticated user ID in the session.
func (h *AccountHandler) signIn(c *fiber.Ctx, userID uint) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(middleware.SessionUserKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
