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

type AdminHandler struct {
	requests *service.RequestService
	catalog  *service.CatalogService
}

type ActionReq struct {
	Action  string `json:"action" form:"action"`
	Comment string `json:"comment" form:"comment"`
}

func NewAdminHandler(db *gorm.DB, smtp pkg.SMTPConfig) *AdminHandler {
	return &AdminHandler{
		requests: service.NewRequestService(db, smtp),
		catalog:  service.NewCatalogService(db),
	}
}

// ListRequests 按状态过滤的分页列表
func (h *AdminHandler) ListRequests(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.Query("page"))

	rows, total, pages, err := h.requests.AdminList(status, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if page <= 0 {
		page = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":     rows,
		"total":        total,
		"pages":        pages,
		"current_page": page,
	})
}

// Action 审批接口：approve / reject
func (h *AdminHandler) Action(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req ActionReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	err = h.requests.Decide(c.Request.Context(), requestID, userIDFromCtx(c), req.Action, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		case errors.Is(err, mysql.ErrInsufficientQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient resource quantity"})
		case errors.Is(err, mysql.ErrAlreadyDecided):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, mysql.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed"})
		}
		return
	}

	message := "Request rejected successfully"
	if req.Action == "approve" {
		message = "Request approved successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Resources 管理端资源总览（带总量）
func (h *AdminHandler) Resources(c *gin.Context) {
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
			"total_quantity":     r.TotalQuantity,
			"available_quantity": r.AvailableQuantity,
			"unit":               r.Unit,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Stats 系统统计
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.catalog.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
