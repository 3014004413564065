package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cafewifi/internal/database"
	"cafewifi/internal/models"
)

// newTestDB opens a fresh in-memory SQLite database named after the test,
// so tests can't see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
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

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", FirstName: "Test", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}
