package service

import (
	"testing"

	"Relief_Hub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonateIncrementsBothQuantities(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "donor@example.com", false, false)
	resource := seedResource(t, db, "Blankets", 500, 480)
	svc := NewDonationService(db)

	id, err := svc.Donate(user.ID, resource.ID, 25, nil, "warehouse drop-off")
	require.NoError(t, err)

	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 525, r.TotalQuantity)
	assert.Equal(t, 505, r.AvailableQuantity)

	var d model.Donation
	require.NoError(t, db.First(&d, id).Error)
	assert.Equal(t, model.DonationCompleted, d.Status)
	assert.Equal(t, 25, d.Quantity)
	assert.Equal(t, "warehouse drop-off", d.Notes)
	assert.Nil(t, d.EventID)
	assert.False(t, d.DonatedAt.IsZero())
}

func TestDonateWithEvent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "donor@example.com", false, false)
	event := seedEvent(t, db, "Hurricane")
	resource := seedResource(t, db, "Blankets", 100, 100)
	svc := NewDonationService(db)

	id, err := svc.Donate(user.ID, resource.ID, 5, &event.ID, "")
	require.NoError(t, err)

	var d model.Donation
	require.NoError(t, db.First(&d, id).Error)
	require.NotNil(t, d.EventID)
	assert.Equal(t, event.ID, *d.EventID)
}

func TestDonateValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "donor@example.com", false, false)
	resource := seedResource(t, db, "Blankets", 100, 100)
	svc := NewDonationService(db)

	_, err := svc.Donate(user.ID, resource.ID, 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Donate(user.ID, resource.ID, -3, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Donate(user.ID, 9999, 5, nil, "")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	badEvent := uint64(9999)
	_, err = svc.Donate(user.ID, resource.ID, 5, &badEvent, "")
	assert.ErrorIs(t, err, ErrEventNotFound)

	// 失败的捐赠不留半写
	var n int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&n).Error)
	assert.Zero(t, n)
	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 100, r.AvailableQuantity)
	assert.Equal(t, 100, r.TotalQuantity)
}

// 连续多笔捐赠的净效果等于数量之和
func TestDonationsAccumulate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "donor@example.com", false, false)
	resource := seedResource(t, db, "Water", 0, 0)
	svc := NewDonationService(db)

	_, err := svc.Donate(user.ID, resource.ID, 40, nil, "")
	require.NoError(t, err)
	_, err = svc.Donate(user.ID, resource.ID, 60, nil, "")
	require.NoError(t, err)

	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 100, r.TotalQuantity)
	assert.Equal(t, 100, r.AvailableQuantity)
}

func TestListMine(t *testing.T) {
	db := newTestDB(t)
	donor := seedUser(t, db, "donor@example.com", false, false)
	other := seedUser(t, db, "other@example.com", false, false)
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewDonationService(db)

	_, err := svc.Donate(donor.ID, resource.ID, 5, nil, "")
	require.NoError(t, err)
	_, err = svc.Donate(other.ID, resource.ID, 7, nil, "")
	require.NoError(t, err)

	list, err := svc.ListMine(donor.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, donor.ID, list[0].UserID)
}
