package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/dsa-tracker-backend/models"
	"github.com/vnkhanh/dsa-tracker-backend/services"
)

// currentUserID đọc user_id do AuthMiddleware gắn vào context
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return uuid.Nil, false
	}
	return userID, true
}

// saveProgress ghi đè toàn bộ tiến độ của user bằng danh sách đã hợp nhất và
// tính lại bộ đếm tổng hợp + lastActive trong cùng một transaction.
// Bộ đếm luôn được tính từ đầu để nhất quán với tiến độ vừa lưu.
func saveProgress(db *gorm.DB, userID uuid.UUID, merged []services.TrackedProblem) error {
	completed, review, total := services.CountStatuses(merged)
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}

		if len(merged) > 0 {
			entries := make([]models.UserProgress, len(merged))
			for i, tp := range merged {
				entries[i] = models.UserProgress{
					UserID:    userID,
					ProblemID: tp.ID,
					Status:    tp.Status,
					Notes:     tp.Notes,
				}
			}
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"completed_problems": completed,
			"review_problems":    review,
			"total_problems":     total,
			"last_active":        now,
		}).Error
	})
}

// GetMyProblems trả về danh sách bài đã hợp nhất với tiến độ của user.
// GET /api/user/problems?search=&category=&status=&difficulty=&grouped=1
//
// Kết quả hợp nhất được ghi lại kho tiến độ ngay sau đó để dữ liệu của user
// tự lành theo danh mục hiện tại (bài mới nhận trạng thái mặc định, bản ghi
// mồ côi biến mất).
func GetMyProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	catalog, err := fetchCatalog(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải danh mục bài tập"})
		return
	}

	var saved []models.UserProgress
	if err := db.Where("user_id = ?", userID).Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải tiến độ"})
		return
	}

	merged := services.Reconcile(catalog, saved)

	// Self-heal: lưu lại kết quả hợp nhất (lũy đẳng nên ghi đè an toàn)
	if err := saveProgress(db, userID, merged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu tiến độ"})
		return
	}

	// Timestamp mới nhất của danh mục, client dùng làm tín hiệu cache
	var lastUpdated *time.Time
	for _, p := range catalog {
		if p.LastUpdated.IsZero() {
			continue
		}
		if lastUpdated == nil || p.LastUpdated.After(*lastUpdated) {
			t := p.LastUpdated
			lastUpdated = &t
		}
	}

	filtered := services.FilterProblems(merged, services.ProblemFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Status:     models.ProgressStatus(c.Query("status")),
		Difficulty: models.DifficultyClass(c.Query("difficulty")),
	})

	response := gin.H{
		"total":        len(filtered),
		"last_updated": lastUpdated,
	}
	if c.Query("grouped") == "1" {
		response["data"] = services.GroupByDifficulty(filtered)
	} else {
		response["data"] = filtered
	}
	c.JSON(http.StatusOK, response)
}

// Một dòng tiến độ client gửi lên khi lưu
type ProgressEntryInput struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// SaveMyProblems lưu danh sách tiến độ client gửi lên.
// PUT /api/user/problems
//
// Danh sách gửi lên được hợp nhất lại với danh mục hiện tại trước khi lưu:
// trường mô tả luôn lấy từ danh mục, entry trỏ tới bài không tồn tại bị loại.
func SaveMyProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input []ProgressEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, entry := range input {
		if entry.Status != "" && !models.ProgressStatus(entry.Status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Trạng thái không hợp lệ: " + entry.Status})
			return
		}
	}

	catalog, err := fetchCatalog(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải danh mục bài tập"})
		return
	}

	saved := make([]models.UserProgress, len(input))
	for i, entry := range input {
		saved[i] = models.UserProgress{
			ProblemID: entry.ID,
			Status:    models.ProgressStatus(entry.Status),
			Notes:     entry.Notes,
		}
	}

	merged := services.Reconcile(catalog, saved)
	if err := saveProgress(db, userID, merged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu tiến độ"})
		return
	}

	completed, review, total := services.CountStatuses(merged)
	c.JSON(http.StatusOK, gin.H{
		"message": "Lưu tiến độ thành công",
		"stats": gin.H{
			"completed_problems": completed,
			"review_problems":    review,
			"total_problems":     total,
		},
	})
}

// ExportMyProblems xuất danh sách đã hợp nhất ra file CSV
// GET /api/user/problems/export
func ExportMyProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	catalog, err := fetchCatalog(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải danh mục bài tập"})
		return
	}

	var saved []models.UserProgress
	if err := db.Where("user_id = ?", userID).Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải tiến độ"})
		return
	}

	out, err := services.ExportCatalogCSV(services.Reconcile(catalog, saved))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xuất CSV"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dsa_tracker.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}
