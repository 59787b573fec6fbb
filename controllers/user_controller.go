package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// GetMe trả về hồ sơ và bộ đếm tổng hợp của user hiện tại
// GET /api/user/me
func GetMe(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể truy vấn người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole đổi vai trò một tài khoản (chỉ admin)
// PATCH /api/admin/users/:id/role
func UpdateUserRole(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.UserRole(input.Role)
	if role != models.RoleAdmin && role != models.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vai trò không hợp lệ"})
		return
	}

	result := db.Model(&models.User{}).Where("id = ?", c.Param("id")).Update("role", role)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật vai trò"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cập nhật vai trò thành công"})
}
