package services

import (
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Review{},
		&models.ReviewComment{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	user := models.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  string(hash),
		Role:      role,
		Status:    models.StatusActive,
		CreatedOn: now,
		UpdatedOn: now,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, ownerID uint, status models.Status) models.Restaurant {
	t.Helper()

	now := time.Now()
	restaurant := models.Restaurant{
		Name:      name,
		OwnerID:   ownerID,
		Status:    status,
		CreatedOn: now,
		UpdatedOn: now,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

func seedReview(t *testing.T, db *gorm.DB, restaurantID, authorID uint, rating float64, status models.Status, createdOn time.Time) models.Review {
	t.Helper()

	review := models.Review{
		RestaurantID: restaurantID,
		AuthorID:     authorID,
		Rating:       rating,
		Status:       status,
		CreatedOn:    createdOn,
		UpdatedOn:    createdOn,
	}
	require.NoError(t, db.Create(&review).Error)
	return review
}

func toIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// stubEncoder stands in for the image adapter.
type stubEncoder struct {
	encoded string
	err     error
	calls   int
}

func (s *stubEncoder) FetchAndEncode(url string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.encoded, nil
}
