package service

import (
	"fmt"
	"testing"

	"Relief_Hub/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Resource{},
		&model.Donation{},
		&model.Request{},
		&model.AdminResponse{},
		&model.VolunteerAssignment{},
		&model.ReliefOutbox{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, admin, volunteer bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Name:         "Test User",
		Email:        email,
		Phone:        "+1000000000",
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsVolunteer:  volunteer,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedEvent(t *testing.T, db *gorm.DB, name string) *model.Event {
	t.Helper()
	e := &model.Event{
		Name:     name,
		Latitude: 27.66, Longitude: -81.51,
		Severity: model.SeverityHigh,
		Status:   model.EventActive,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func seedResource(t *testing.T, db *gorm.DB, name string, total, available int) *model.Resource {
	t.Helper()
	r := &model.Resource{
		Name:              name,
		Category:          "Food",
		TotalQuantity:     total,
		AvailableQuantity: available,
		Unit:              "units",
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// requireLedgerInvariant 0 <= available <= total
func requireLedgerInvariant(t *testing.T, db *gorm.DB, resourceID uint64) *model.Resource {
	t.Helper()
	var r model.Resource
	require.NoError(t, db.First(&r, resourceID).Error)
	require.GreaterOrEqual(t, r.AvailableQuantity, 0)
	require.LessOrEqual(t, r.AvailableQuantity, r.TotalQuantity)
	return &r
}
