package utils

import (
	"log"
	"time"

	"github.com/vnkhanh/dsa-tracker-backend/config"
	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// CleanupExpiredTokens xóa các token đặt lại mật khẩu đã hết hạn hoặc đã dùng
func CleanupExpiredTokens() {
	db := config.DB

	result := db.Where("expires_at < ? OR used = ?", time.Now(), true).
		Delete(&models.PasswordReset{})

	if result.Error != nil {
		log.Printf("Lỗi khi xóa password reset tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã xóa %d password reset tokens hết hạn/đã dùng", result.RowsAffected)
	}
}

// StartCleanupJob chạy cleanup định kỳ mỗi 6 giờ
func StartCleanupJob() {
	CleanupExpiredTokens()

	ticker := time.NewTicker(6 * time.Hour)

	go func() {
		defer ticker.Stop()
		for range ticker.C {
			CleanupExpiredTokens()
		}
	}()

	log.Println("Cleanup job đã được khởi động (chạy mỗi 6 giờ)")
}
