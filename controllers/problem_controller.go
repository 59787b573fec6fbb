package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/dsa-tracker-backend/models"
	"github.com/vnkhanh/dsa-tracker-backend/services"
	"github.com/vnkhanh/dsa-tracker-backend/utils"
	"github.com/vnkhanh/dsa-tracker-backend/ws"
)

// fetchCatalog đọc toàn bộ danh mục dùng chung theo thứ tự id
func fetchCatalog(db *gorm.DB) ([]models.Problem, error) {
	var catalog []models.Problem
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

// GetProblems liệt kê danh mục cho trang quản trị
// GET /api/admin/problems?difficulty=
func GetProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Problem{}).Order("id ASC")
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty_class = ?", difficulty)
	}

	var problems []models.Problem
	if err := query.Find(&problems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải danh mục bài tập"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  problems,
		"total": len(problems),
	})
}

type ProblemInput struct {
	Category        string `json:"category"`
	Name            string `json:"name" binding:"required"`
	Link            string `json:"link"`
	DifficultyClass string `json:"difficulty_class"`
}

// resolveInputDifficulty: giá trị gửi lên hợp lệ thì dùng, không thì suy từ
// chính giá trị đó hoặc từ category, cuối cùng mặc định medium
func resolveInputDifficulty(raw, category string) models.DifficultyClass {
	if class := models.DifficultyClass(raw); class.Valid() {
		return class
	}
	if class, ok := services.ClassifyDifficulty(raw); ok {
		return class
	}
	return services.DifficultyOrDefault(category)
}

// CreateProblem thêm một bài vào danh mục, id = max(id hiện có)+1
// POST /api/admin/problems
func CreateProblem(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên bài bắt buộc"})
		return
	}

	catalog, err := fetchCatalog(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tải danh mục bài tập"})
		return
	}

	problem := models.Problem{
		ID:              services.NextProblemID(catalog),
		Category:        input.Category,
		Name:            strings.TrimSpace(input.Name),
		Link:            input.Link,
		DifficultyClass: resolveInputDifficulty(input.DifficultyClass, input.Category),
		LastUpdated:     time.Now(),
	}
	if problem.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên bài bắt buộc"})
		return
	}

	if err := db.Create(&problem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo bài tập"})
		return
	}

	ws.BroadcastCatalogChanged()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Tạo bài tập thành công",
		"problem": problem,
	})
}

// UpdateProblem sửa một bài trong danh mục
// PUT /api/admin/problems/:id
func UpdateProblem(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Id bài tập không hợp lệ"})
		return
	}

	var problem models.Problem
	if err := db.First(&problem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể truy vấn bài tập"})
		return
	}

	var input ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên bài bắt buộc"})
		return
	}

	problem.Category = input.Category
	problem.Name = strings.TrimSpace(input.Name)
	problem.Link = input.Link
	problem.DifficultyClass = resolveInputDifficulty(input.DifficultyClass, input.Category)
	problem.LastUpdated = time.Now()

	if problem.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tên bài bắt buộc"})
		return
	}

	if err := db.Save(&problem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật bài tập"})
		return
	}

	ws.BroadcastCatalogChanged()
	c.JSON(http.StatusOK, gin.H{
		"message": "Cập nhật bài tập thành công",
		"problem": problem,
	})
}

// DeleteProblem xóa một bài; tiến độ user trỏ tới bài này thành mồ côi và sẽ
// bị loại ở lần hợp nhất kế tiếp
// DELETE /api/admin/problems/:id
func DeleteProblem(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Id bài tập không hợp lệ"})
		return
	}

	result := db.Delete(&models.Problem{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bài tập"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài tập"})
		return
	}

	ws.BroadcastCatalogChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Xóa bài tập thành công"})
}

// DeleteAllProblems xóa toàn bộ danh mục
// DELETE /api/admin/problems
func DeleteAllProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	if err := db.Where("1 = 1").Delete(&models.Problem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa danh mục"})
		return
	}

	ws.BroadcastCatalogChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa toàn bộ danh mục bài tập"})
}

// ImportProblems nạp danh mục từ file CSV/XLSX do admin upload.
// POST /api/admin/problems/import?mode=replace|append (mặc định replace)
//   - replace: thay toàn bộ danh mục, id đánh lại từ 0 theo chỉ số dòng
//   - append: ghép vào danh mục hiện có, id bắt đầu từ max(id)+1
func ImportProblems(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu file import"})
		return
	}

	mode := c.DefaultQuery("mode", "replace")
	if mode != "replace" && mode != "append" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode phải là replace hoặc append"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đọc file import"})
		return
	}
	defer file.Close()

	// Phân tích theo phần mở rộng, cùng một pipeline chuẩn hóa
	var parsed *services.ParsedCatalog
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		parsed, err = services.ParseCatalogXLSX(file)
	default:
		raw, readErr := io.ReadAll(file)
		if readErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể đọc file import"})
			return
		}
		parsed, err = services.ParseCatalogCSV(string(raw))
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File không phân tích được: " + err.Error()})
		return
	}
	if len(parsed.Problems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File không có dòng hợp lệ nào"})
		return
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		startID := 0
		if mode == "append" {
			catalog, err := fetchCatalog(tx)
			if err != nil {
				return err
			}
			startID = services.NextProblemID(catalog)
		} else {
			if err := tx.Where("1 = 1").Delete(&models.Problem{}).Error; err != nil {
				return err
			}
		}

		services.StampCatalog(parsed.Problems, startID, now)

		problems := make([]models.Problem, len(parsed.Problems))
		for i, tp := range parsed.Problems {
			problems[i] = tp.Problem
		}
		return tx.Create(&problems).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu danh mục import"})
		return
	}

	// Lưu file gốc lên storage để đối chiếu (không chặn response)
	go func() {
		if _, err := utils.ArchiveImportFile(fileHeader, uuid.NewString()); err != nil {
			log.Println("Lỗi lưu file import:", err)
		}
	}()

	ws.BroadcastCatalogChanged()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Import danh mục thành công",
		"mode":     mode,
		"imported": len(parsed.Problems),
		"dropped":  parsed.Dropped,
	})
}
