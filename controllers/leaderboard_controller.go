package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/dsa-tracker-backend/models"
	"github.com/vnkhanh/dsa-tracker-backend/services"
)

// GetLeaderboard trả về bảng xếp hạng theo số bài hoàn thành.
// GET /api/leaderboard?search=&limit=&offset=
//
// Hạng được tính trên TOÀN BỘ user trước, rồi mới lọc theo tên và cắt trang,
// nên hạng hiển thị không đổi khi tìm kiếm hay chuyển trang.
func GetLeaderboard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var users []models.User
	if err := db.Order("completed_problems DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải bảng xếp hạng"})
		return
	}

	ranked := services.RankUsers(users)
	ranked = services.SearchRanked(ranked, c.Query("search"))
	total := len(ranked)

	// Phân trang đơn giản bằng cắt lát
	limit := 20
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 100 {
			limit = val
		}
	}
	offset := 0
	if o := c.Query("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   ranked[offset:end],
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
