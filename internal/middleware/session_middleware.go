package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cafewifi/internal/models"
	"cafewifi/internal/services"
)

// Session keys shared between the middleware and the handlers.
const (
	SessionUserKey  = "user_id"
	SessionFlashKey = "flash"
	currentUserKey  = "current_user"
)

// LoadIdentity resolves the session's stored user ID to a full user record
// and stores it in the request Locals. A missing or stale session simply
// leaves the request anonymous; a session pointing at a deleted account is
// torn down.
func LoadIdentity(store *session.Store, accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Next()
		}

		id, ok := sess.Get(SessionUserKey).(uint)
		if !ok {
			return c.Next()
		}

		user, err := accounts.LoadIdentity(id)
		if err != nil {
			if destroyErr := sess.Destroy(); destroyErr != nil {
				log.Printf("Failed to destroy stale session: %v", destroyErr)
			}
			return c.Next()
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, or nil for
// an anonymous visitor. LoadIdentity must run earlier in the chain.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// LoginRequired gates a route to authenticated users, flashing a message
// and redirecting anonymous visitors to the login page.
func LoginRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Next()
		}
		SetFlash(c, store, "Please log in to continue.")
		return c.Redirect("/login")
	}
}

// AdminRequired gates a route to the administrator. Every other identity,
// authenticated or not, gets an explicit 403 page rather than a silent
// redirect. The page carries the same base view-model as every other
// render, so a pending flash still shows.
func AdminRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if !user.IsAdmin() {
			data := fiber.Map{
				"LoggedIn":    user != nil,
				"CurrentUser": user,
				"IsAdmin":     false,
			}
			if flash := TakeFlash(c, store); flash != "" {
				data["Flash"] = flash
			}
			return c.Status(fiber.StatusForbidden).Render("403", data)
		}
		return c.Next()
	}
}

// SetFlash stores a one-shot message in the session for the next render.
func SetFlash(c *fiber.Ctx, store *session.Store, message string) {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Failed to load session for flash: %v", err)
		return
	}
	sess.Set(SessionFlashKey, message)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save flash message: %v", err)
	}
}

// TakeFlash returns the pending flash message, clearing it so it renders
// exactly once.
func TakeFlash(c *fiber.Ctx, store *session.Store) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	message, ok := sess.Get(SessionFlashKey).(string)
	if !ok || message == "" {
		return ""
	}
	sess.Delete(SessionFlashKey)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to clear flash message: %v", err)
	}
	return message
}
