package router

import (
	"Relief_Hub/internal/handler"
	"Relief_Hub/internal/middleware"
	"Relief_Hub/internal/pkg"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, smtp pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	auth := handler.NewAuthHandler(db)
	user := handler.NewUserHandler(db, smtp)
	admin := handler.NewAdminHandler(db, smtp)
	volunteer := handler.NewVolunteerHandler(db)

	// 认证相关接口
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/token/refresh", auth.TokenRefresh)
		authGroup.GET("/logout", middleware.AuthMiddleware(), auth.Logout)
	}

	// 用户侧接口
	userGroup := r.Group("/user")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/events", user.Events)
		userGroup.GET("/resources", user.Resources)
		userGroup.GET("/donations", user.Donations)
		userGroup.POST("/donate", user.Donate)
		userGroup.POST("/requests", user.CreateRequest)
		userGroup.GET("/requests/:id", user.GetRequest)
	}

	// 管理端接口
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware(db))
	{
		adminGroup.GET("/requests", admin.ListRequests)
		adminGroup.POST("/requests/:id/action", admin.Action)
		adminGroup.GET("/resources", admin.Resources)
		adminGroup.GET("/stats", admin.Stats)
	}

	// 志愿者接口
	volunteerGroup := r.Group("/volunteer")
	volunteerGroup.Use(middleware.AuthMiddleware())
	{
		volunteerGroup.POST("/signup", volunteer.Signup)
		volunteerGroup.GET("/tasks", volunteer.Tasks)
		volunteerGroup.GET("/assignments", volunteer.Assignments)
		volunteerGroup.POST("/tasks/:id/accept", volunteer.Accept)
		volunteerGroup.POST("/tasks/:id/complete", volunteer.Complete)
	}

	return r
}
