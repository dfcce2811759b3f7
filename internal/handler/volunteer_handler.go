package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Relief_Hub/internal/repository/mysql"
	"Relief_Hub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VolunteerHandler struct {
	svc *service.VolunteerService
}

func NewVolunteerHandler(db *gorm.DB) *VolunteerHandler {
	return &VolunteerHandler{svc: service.NewVolunteerService(db)}
}

// Signup 成为志愿者
func (h *VolunteerHandler) Signup(c *gin.Context) {
	if err := h.svc.Signup(userIDFromCtx(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the volunteer team!"})
}

// Tasks 可领取的任务列表
func (h *VolunteerHandler) Tasks(c *gin.Context) {
	tasks, err := h.svc.AvailableTasks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Assignments 我的任务列表
func (h *VolunteerHandler) Assignments(c *gin.Context) {
	list, err := h.svc.MyAssignments(userIDFromCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": list})
}

// Accept 领取任务
func (h *VolunteerHandler) Accept(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	assignmentID, err := h.svc.Accept(userIDFromCtx(c), requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotVolunteer):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, mysql.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotApproved):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, mysql.ErrAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "accept failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Task accepted successfully",
		"assignment_id": assignmentID,
	})
}

// Complete 完成任务，父请求随之进入 Fulfilled
func (h *VolunteerHandler) Complete(c *gin.Context) {
	assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	if err := h.svc.Complete(c.Request.Context(), userIDFromCtx(c), assignmentID); err != nil {
		switch {
		case errors.Is(err, mysql.ErrAssignmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotAssignee):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "complete failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task completed! Thank you for your help."})
}
