package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles chặn request khi role trong context không nằm trong danh sách
// cho phép. Đặt SAU AuthMiddleware: mọi thao tác sửa danh mục bị từ chối ở
// đây, trước khi chạm tới store.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được vai trò người dùng"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi xử lý vai trò người dùng"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": "Bạn không có quyền truy cập tài nguyên này",
		})
		c.Abort()
	}
}
