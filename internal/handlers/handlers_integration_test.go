package handlers_test

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cafewifi/internal/database"
	"cafewifi/internal/handlers"
	"cafewifi/internal/middleware"
	"cafewifi/internal/models"
	"cafewifi/internal/repositories"
	"cafewifi/internal/services"
)

// setupApp builds the full application against an in-memory SQLite database
// unique to the test, with no event broker attached.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cafeRepo := repositories.NewGORMCafeRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	accountService := services.NewAccountService(userRepo)
	catalogService := services.NewCatalogService(cafeRepo, favoriteRepo)
	favoritesService := services.NewFavoritesService(favoriteRepo, cafeRepo, nil)
	curationService := services.NewCurationService(cafeRepo, nil)

	store := session.New()

	accountHandler := handlers.NewAccountHandler(accountService, store)
	catalogHandler := handlers.NewCatalogHandler(catalogService, store)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService, store)
	curationHandler := handlers.NewCurationHandler(curationService, store)

	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	app.Use(middleware.LoadIdentity(store, accountService))

	accountHandler.RegisterRoutes(app)
	catalogHandler.RegisterRoutes(app)
	favoritesHandler.RegisterRoutes(app)
	curationHandler.RegisterRoutes(app)

	return app, db
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// sessionCookie extracts the session cookie value from a response.
func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c.Value
		}
	}
	return ""
}

func withCookie(req *http.Request, cookie string) {
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
	}
}

func getPage(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	withCookie(req, cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withCookie(req, cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return string(body)
}

// register signs up an account and returns its session cookie.
func register(t *testing.T, app *fiber.App, firstName, email, password string) string {
	t.Helper()
	resp := postForm(t, app, "/register", url.Values{
		"first_name": {firstName},
		"email":      {email},
		"password":   {password},
		"confirm":    {password},
	}, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	resp.Body.Close()
	return cookie
}

func seedCafe(t *testing.T, db *gorm.DB, name, location string, sockets, toilet, wifi bool) *models.Cafe {
	t.Helper()
	cafe := &models.Cafe{
		Name:       name,
		MapURL:     "https://maps.example.com/" + name,
		ImgURL:     "https://img.example.com/" + name + ".jpg",
		Location:   location,
		Seats:      "20-30",
		HasSockets: sockets,
		HasToilet:  toilet,
		HasWifi:    wifi,
	}
	require.NoError(t, db.Create(cafe).Error)
	return cafe
}

func TestRegisterAndLogin(t *testing.T) {
	app, db := setupApp(t)

	// Registration creates exactly one user, hashes the password and signs
	// the visitor in. The first account is the administrator.
	cookie := register(t, app, "Alice", "alice@example.com", "Secret1")

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("Secret1")))

	resp := getPage(t, app, "/", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "/logout")

	// Registering the same email again redirects to the login page with a
	// flash message and leaves the user table unchanged.
	resp = postForm(t, app, "/register", url.Values{
		"first_name": {"Alice"},
		"email":      {"alice@example.com"},
		"password":   {"Secret1"},
		"confirm":    {"Secret1"},
	}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	flashCookie := sessionCookie(resp)
	resp.Body.Close()

	resp = getPage(t, app, "/login", flashCookie)
	assert.Contains(t, readBody(t, resp), "already signed up")

	require.NoError(t, db.Find(&users).Error)
	assert.Len(t, users, 1)

	// Wrong password and unknown email produce distinct messages, and
	// neither establishes a session.
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrongpassword"},
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Incorrect Password.")

	resp = postForm(t, app, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"Secret1"},
	}, "")
	assert.Contains(t, readBody(t, resp), "Email not found.")

	// Correct credentials sign in and redirect home.
	resp = postForm(t, app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"Secret1"},
	}, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	loggedIn := sessionCookie(resp)
	assert.NotEmpty(t, loggedIn)
	resp.Body.Close()

	// Logout tears the session down; the next request is anonymous again.
	resp = getPage(t, app, "/logout", loggedIn)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	resp = getPage(t, app, "/favorites", loggedIn)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestAdminAddCafe(t *testing.T) {
	app, db := setupApp(t)

	adminCookie := register(t, app, "Alice", "alice@example.com", "Secret1")

	// The admin submits the new-café form; checked boxes carry "y".
	resp := postForm(t, app, "/add", url.Values{
		"name":         {"Blue Bottle"},
		"map_url":      {"https://maps.example.com/blue-bottle"},
		"img_url":      {"https://img.example.com/blue-bottle.jpg"},
		"location":     {"Shoreditch"},
		"seats":        {"20-30"},
		"has_sockets":  {"y"},
		"has_wifi":     {"y"},
		"coffee_price": {"3.50"},
	}, adminCookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	var cafe models.Cafe
	require.NoError(t, db.First(&cafe, "name = ?", "Blue Bottle").Error)
	assert.True(t, cafe.HasSockets)
	assert.True(t, cafe.HasWifi)
	assert.False(t, cafe.HasToilet)
	assert.False(t, cafe.CanTakeCalls)
	assert.Equal(t, "£3.50", cafe.CoffeePrice)

	// The detail page projects toilet/wifi/sockets to yes/no labels.
	resp = getPage(t, app, fmt.Sprintf("/cafe/%d", cafe.ID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "£3.50")
	assert.Contains(t, body, "Wifi: Yes")
	assert.Contains(t, body, "Sockets: Yes")
	assert.Contains(t, body, "Toilet: No")

	// A duplicate name is a field-level error, not a second row.
	resp = postForm(t, app, "/add", url.Values{
		"name":         {"Blue Bottle"},
		"map_url":      {"https://maps.example.com/other"},
		"img_url":      {"https://img.example.com/other.jpg"},
		"location":     {"Peckham"},
		"seats":        {"10"},
		"coffee_price": {"2.80"},
	}, adminCookie)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "already exists")

	// A malformed URL is rejected at the form boundary.
	resp = postForm(t, app, "/add", url.Values{
		"name":         {"Roastery"},
		"map_url":      {"not-a-url"},
		"img_url":      {"https://img.example.com/roastery.jpg"},
		"location":     {"Hackney"},
		"seats":        {"15"},
		"coffee_price": {"3.00"},
	}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A second, non-admin account gets an explicit denial and writes nothing.
	bobCookie := register(t, app, "Bob", "bob@example.com", "hunter2x")

	resp = getPage(t, app, "/add", bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = postForm(t, app, "/add", url.Values{
		"name":         {"Bob's Cafe"},
		"map_url":      {"https://maps.example.com/bobs"},
		"img_url":      {"https://img.example.com/bobs.jpg"},
		"location":     {"Peckham"},
		"seats":        {"5"},
		"coffee_price": {"1.00"},
	}, bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Anonymous visitors are denied too, not redirected.
	resp = getPage(t, app, "/add", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, db.Model(&models.Cafe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestForbiddenPageKeepsFlash(t *testing.T) {
	app, _ := setupApp(t)

	register(t, app, "Alice", "alice@example.com", "Secret1")

	// A duplicate registration leaves a flash on a fresh anonymous session.
	resp := postForm(t, app, "/register", url.Values{
		"first_name": {"Alice"},
		"email":      {"alice@example.com"},
		"password":   {"Secret1"},
		"confirm":    {"Secret1"},
	}, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	resp.Body.Close()

	// The admin gate's 403 page renders that pending flash instead of
	// dropping it.
	resp = getPage(t, app, "/add", cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "already signed up")
}

func TestFavoriteToggle(t *testing.T) {
	app, db := setupApp(t)

	cafe := seedCafe(t, db, "Electric Cafe", "Peckham", true, true, true)
	cookie := register(t, app, "Alice", "alice@example.com", "Secret1")

	// Toggling favorites the café and bounces back to the referring page.
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/favorite/%d", cafe.ID), nil)
	req.Header.Set("Referer", "/popular")
	withCookie(req, cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/popular", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = getPage(t, app, "/favorites", cookie)
	assert.Contains(t, readBody(t, resp), "Electric Cafe")

	// The home page reflects the favorite state for the signed-in visitor.
	resp = getPage(t, app, "/", cookie)
	assert.Contains(t, readBody(t, resp), "Unfavorite")

	// Toggling again un-favorites: back to the original state.
	resp = getPage(t, app, fmt.Sprintf("/favorite/%d", cafe.ID), cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	resp = getPage(t, app, "/favorites", cookie)
	assert.NotContains(t, readBody(t, resp), "Electric Cafe")

	// A bogus café id is a proper not-found, and favorites stay gated.
	resp = getPage(t, app, "/favorite/999", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = getPage(t, app, "/favorites", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestSearchAndPopular(t *testing.T) {
	app, db := setupApp(t)

	seedCafe(t, db, "Electric Cafe", "Peckham", true, true, true)
	seedCafe(t, db, "Quiet Corner", "Hackney", true, true, false) // no wifi

	// Popular requires sockets, toilet and wifi all at once.
	resp := getPage(t, app, "/popular", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Electric Cafe")
	assert.NotContains(t, body, "Quiet Corner")

	// Search matches the location exactly.
	resp = postForm(t, app, "/search", url.Values{"location": {"Hackney"}}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = readBody(t, resp)
	assert.Contains(t, body, "Quiet Corner")
	assert.NotContains(t, body, "Electric Cafe")
	// The page offers the full distinct set of known locations.
	assert.Contains(t, body, "Peckham")

	// No matches is an empty page, not an error.
	resp = postForm(t, app, "/search", url.Values{"location": {"Nowhere"}}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No cafes found in that area.")

	// Unknown café detail pages 404.
	resp = getPage(t, app, "/cafe/999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = getPage(t, app, "/about", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
