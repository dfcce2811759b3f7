package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"
	"Relief_Hub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	donations *service.DonationService
	requests  *service.RequestService
	catalog   *service.CatalogService
}

type DonateReq struct {
	ResourceID uint64  `json:"resource_id" form:"resource_id"`
	Quantity   int     `json:"quantity" form:"quantity"`
	EventID    *uint64 `json:"event_id" form:"event_id"`
	Notes      string  `json:"notes" form:"notes"`
}

type CreateRequestReq struct {
	ResourceID uint64 `json:"resource_id" form:"resource_id"`
	EventID    uint64 `json:"event_id" form:"event_id"`
	Quantity   int    `json:"quantity" form:"quantity"`
	Urgency    string `json:"urgency" form:"urgency"`
}

func NewUserHandler(db *gorm.DB, smtp pkg.SMTPConfig) *UserHandler {
	return &UserHandler{
		donations: service.NewDonationService(db),
		requests:  service.NewRequestService(db, smtp),
		catalog:   service.NewCatalogService(db),
	}
}

// Events 地图用的活跃事件列表
func (h *UserHandler) Events(c *gin.Context) {
	events, err := h.catalog.ActiveEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, gin.H{
			"id":          e.ID,
			"name":        e.Name,
			"description": e.Description,
			"latitude":    e.Latitude,
			"longitude":   e.Longitude,
			"severity":    e.Severity,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Resources 用户侧只暴露可用量
func (h *UserHandler) Resources(c *gin.Context) {
	resources, err := h.catalog.Resources()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, 0, len(resources))
	for _, r := range resources {
		out = append(out, gin.H{
			"id":                 r.ID,
			"name":               r.Name,
			"category":           r.Category,
			"available_quantity": r.AvailableQuantity,
			"unit":               r.Unit,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Donations 我的最近捐赠
func (h *UserHandler) Donations(c *gin.Context) {
	list, err := h.donations.ListMine(userIDFromCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": list})
}

// Donate 捐赠接口
func (h *UserHandler) Donate(c *gin.Context) {
	var req DonateReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}
	if req.ResourceID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource and quantity are required"})
		return
	}

	donationID, err := h.donations.Donate(userIDFromCtx(c), req.ResourceID, req.Quantity, req.EventID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrResourceNotFound),
			errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "donation failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Donation successful",
		"donation_id": donationID,
	})
}

// CreateRequest 提交资源请求
func (h *UserHandler) CreateRequest(c *gin.Context) {
	var req CreateRequestReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}
	if req.ResourceID == 0 || req.EventID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource, event, and quantity are required"})
		return
	}

	requestID, err := h.requests.Create(userIDFromCtx(c), req.ResourceID, req.EventID, req.Quantity, req.Urgency)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrResourceNotFound),
			errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "request creation failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Request submitted successfully",
		"request_id": requestID,
	})
}

// GetRequest 请求详情，只能看自己的
func (h *UserHandler) GetRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	detail, err := h.requests.Detail(userIDFromCtx(c), requestID)
	if err != nil {
		if errors.Is(err, mysql.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, detail)
}
