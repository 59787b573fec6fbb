package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin" // Quản trị hệ thống (quản lý danh mục bài tập)
	RoleUser  UserRole = "user"  // Người dùng luyện tập
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DisplayName string    `gorm:"size:150" json:"display_name"`
	Email       string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text" json:"-"`
	PhotoURL    string    `gorm:"type:text" json:"photo_url"`
	Role        UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	// Bộ đếm tổng hợp: được tính lại toàn bộ mỗi lần lưu tiến độ,
	// không bao giờ tăng dần hay sửa tay
	CompletedProblems int `gorm:"not null;default:0" json:"completed_problems"`
	ReviewProblems    int `gorm:"not null;default:0" json:"review_problems"`
	TotalProblems     int `gorm:"not null;default:0" json:"total_problems"`

	LastActive *time.Time `json:"last_active,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Progress []UserProgress `json:"-"`
}
