package service

import (
	"context"
	"testing"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	_, err := svc.Create(user.ID, resource.ID, event.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(user.ID, resource.ID, event.ID, -5, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(user.ID, 9999, event.ID, 10, "")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = svc.Create(user.ID, resource.ID, 9999, 10, "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateRequestDefaultsUrgency(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 10, "")
	require.NoError(t, err)

	var req model.Request
	require.NoError(t, db.First(&req, id).Error)
	assert.Equal(t, model.UrgencyMedium, req.Urgency)
	assert.Equal(t, model.RequestPending, req.Status)
}

// 创建时刻不校验余量：超订请求允许进入 Pending
func TestCreateRequestAllowsOversubscription(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 10, 10)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	_, err := svc.Create(user.ID, resource.ID, event.ID, 500, model.UrgencyHigh)
	require.NoError(t, err)
	requireLedgerInvariant(t, db, resource.ID)
}

func TestApproveDecrementsAvailable(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 30, model.UrgencyHigh)
	require.NoError(t, err)

	require.NoError(t, svc.Decide(context.Background(), id, admin.ID, "approve", "go ahead"))

	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 70, r.AvailableQuantity)
	assert.Equal(t, 100, r.TotalQuantity)

	var req model.Request
	require.NoError(t, db.First(&req, id).Error)
	assert.Equal(t, model.RequestApproved, req.Status)

	var resp model.AdminResponse
	require.NoError(t, db.Where("request_id = ?", id).First(&resp).Error)
	assert.Equal(t, model.ActionApproved, resp.Action)
	assert.Equal(t, "go ahead", resp.Comment)
	assert.Equal(t, admin.ID, resp.AdminID)

	var ob model.ReliefOutbox
	require.NoError(t, db.Where("request_id = ?", id).First(&ob).Error)
	assert.Equal(t, model.EventRequestApproved, ob.EventType)
}

// 余量不足的审批必须整体失败，库存与请求都保持原样
func TestApproveInsufficientLeavesStateUnchanged(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 10, 10)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 20, "")
	require.NoError(t, err)

	err = svc.Decide(context.Background(), id, admin.ID, "approve", "")
	assert.ErrorIs(t, err, mysql.ErrInsufficientQuantity)

	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 10, r.AvailableQuantity)

	var req model.Request
	require.NoError(t, db.First(&req, id).Error)
	assert.Equal(t, model.RequestPending, req.Status)

	var n int64
	require.NoError(t, db.Model(&model.AdminResponse{}).Where("request_id = ?", id).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRejectTouchesNoLedger(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 30, "")
	require.NoError(t, err)

	require.NoError(t, svc.Decide(context.Background(), id, admin.ID, "reject", "no stock plan"))

	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 100, r.AvailableQuantity)

	var req model.Request
	require.NoError(t, db.First(&req, id).Error)
	assert.Equal(t, model.RequestRejected, req.Status)
}

// 一单一决：已决请求再审批必须失败，且只留一条审批记录
func TestDecideTwiceFails(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 30, "")
	require.NoError(t, err)

	require.NoError(t, svc.Decide(context.Background(), id, admin.ID, "approve", ""))

	err = svc.Decide(context.Background(), id, admin.ID, "reject", "")
	assert.ErrorIs(t, err, mysql.ErrAlreadyDecided)

	err = svc.Decide(context.Background(), id, admin.ID, "approve", "")
	assert.ErrorIs(t, err, mysql.ErrAlreadyDecided)

	// 没有重复扣减
	r := requireLedgerInvariant(t, db, resource.ID)
	assert.Equal(t, 70, r.AvailableQuantity)

	var n int64
	require.NoError(t, db.Model(&model.AdminResponse{}).Where("request_id = ?", id).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDecideErrors(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", true, false)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	err := svc.Decide(context.Background(), 42, admin.ID, "approve", "")
	assert.ErrorIs(t, err, mysql.ErrRequestNotFound)

	err = svc.Decide(context.Background(), 42, admin.ID, "escalate", "")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestDetailIncludesDecision(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(user.ID, resource.ID, event.ID, 30, model.UrgencyCritical)
	require.NoError(t, err)

	detail, err := svc.Detail(user.ID, id)
	require.NoError(t, err)
	assert.Equal(t, "Water", detail.ResourceName)
	assert.Equal(t, "Flood", detail.EventName)
	assert.Equal(t, model.UrgencyCritical, detail.Urgency)
	assert.Nil(t, detail.Response)

	require.NoError(t, svc.Decide(context.Background(), id, admin.ID, "approve", "ok"))

	detail, err = svc.Detail(user.ID, id)
	require.NoError(t, err)
	require.NotNil(t, detail.Response)
	assert.Equal(t, model.ActionApproved, detail.Response.Action)
	assert.Equal(t, "ok", detail.Response.Comment)
	assert.Equal(t, "Test User", detail.Response.AdminName)
}

// 详情接口只对请求人开放
func TestDetailScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com", false, false)
	other := seedUser(t, db, "other@example.com", false, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 100, 100)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	id, err := svc.Create(owner.ID, resource.ID, event.ID, 30, "")
	require.NoError(t, err)

	_, err = svc.Detail(other.ID, id)
	assert.ErrorIs(t, err, mysql.ErrRequestNotFound)
}

func TestAdminListPagination(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "user@example.com", false, false)
	admin := seedUser(t, db, "admin@example.com", true, false)
	event := seedEvent(t, db, "Flood")
	resource := seedResource(t, db, "Water", 1000, 1000)
	svc := NewRequestService(db, pkg.SMTPConfig{})

	var firstID uint64
	for i := 0; i < 12; i++ {
		id, err := svc.Create(user.ID, resource.ID, event.ID, i+1, "")
		require.NoError(t, err)
		if i == 0 {
			firstID = id
		}
	}
	// 其中一条批准，用于状态过滤
	require.NoError(t, svc.Decide(context.Background(), firstID, admin.ID, "approve", ""))

	rows, total, pages, err := svc.AdminList("", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, 2, pages)

	rows, total, _, err = svc.AdminList("", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(12), total)

	rows, total, pages, err = svc.AdminList(model.RequestApproved, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 1, pages)
	assert.Equal(t, model.RequestApproved, rows[0].Status)
	assert.Equal(t, "Water", rows[0].ResourceName)
}
