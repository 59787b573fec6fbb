package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/dsa-tracker-backend/controllers"
	"github.com/vnkhanh/dsa-tracker-backend/middleware"
	"github.com/vnkhanh/dsa-tracker-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	user := api.Group("/user")
	{
		user.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		// Danh sách bài đã hợp nhất với tiến độ cá nhân
		user.GET("/problems", controllers.GetMyProblems)
		user.PUT("/problems", controllers.SaveMyProblems)
		user.GET("/problems/export", controllers.ExportMyProblems)

		user.GET("/me", controllers.GetMe)
		user.PUT("/password", controllers.ChangePassword)
	}

	// Bảng xếp hạng: xem không cần đăng nhập
	leaderboard := api.Group("/leaderboard")
	{
		leaderboard.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))
		leaderboard.GET("", controllers.GetLeaderboard)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin"))

		// Quản lý danh mục bài tập
		admin.GET("/problems", controllers.GetProblems)
		admin.POST("/problems", controllers.CreateProblem)
		admin.PUT("/problems/:id", controllers.UpdateProblem)
		admin.DELETE("/problems/:id", controllers.DeleteProblem)
		admin.DELETE("/problems", controllers.DeleteAllProblems)
		admin.POST("/problems/import", controllers.ImportProblems)

		// Quản lý tài khoản
		admin.PATCH("/users/:id/role", controllers.UpdateUserRole)
	}

	r.GET("/ws/leaderboard", ws.HandleLeaderboardWebSocket)

	return r
}
