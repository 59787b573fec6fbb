package models

import (
	"time"

	"github.com/google/uuid"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "Not Started"
	StatusReview     ProgressStatus = "Review"
	StatusCompleted  ProgressStatus = "Completed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// UserProgress lưu trạng thái + ghi chú riêng của một user trên một bài.
// ProblemID tham chiếu danh mục dùng chung; bản ghi mồ côi (bài đã bị xóa
// khỏi danh mục) sẽ bị loại khi hợp nhất và không được lưu lại.
type UserProgress struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_problem" json:"user_id"`
	ProblemID int            `gorm:"not null;uniqueIndex:idx_user_problem" json:"problem_id"`
	Status    ProgressStatus `gorm:"type:varchar(20);not null;default:'Not Started'" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Khóa ngoại
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
