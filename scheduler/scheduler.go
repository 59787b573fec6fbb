package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"

	"github.com/vnkhanh/dsa-tracker-backend/models"
	"github.com/vnkhanh/dsa-tracker-backend/services"
	"github.com/vnkhanh/dsa-tracker-backend/ws"
)

// Chu kỳ làm mới bảng xếp hạng mặc định (phút), đổi bằng env
// LEADERBOARD_REFRESH_MINUTES. Đây là giới hạn độ trễ duy nhất của bảng xếp
// hạng: không có push invalidation, chỉ tính lại định kỳ từ đầu.
const DefaultRefreshMinutes = 5

type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
	}
}

// Start đăng ký job làm mới bảng xếp hạng và chạy nền
func (s *Scheduler) Start() {
	minutes := DefaultRefreshMinutes
	if v := os.Getenv("LEADERBOARD_REFRESH_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}

	s.scheduler.Every(minutes).Minutes().Do(s.refreshLeaderboard)
	s.scheduler.StartAsync()

	log.Printf("Leaderboard refresh job đã khởi động (chạy mỗi %d phút)", minutes)
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refreshLeaderboard tính lại toàn bộ hạng từ đầu và broadcast cho các client
// đang mở trang bảng xếp hạng
func (s *Scheduler) refreshLeaderboard() {
	var users []models.User
	if err := s.db.Order("completed_problems DESC").Find(&users).Error; err != nil {
		log.Printf("Lỗi khi tải users cho bảng xếp hạng: %v", err)
		return
	}

	ws.BroadcastLeaderboard(services.RankUsers(users))
}
