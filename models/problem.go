package models

import "time"

type DifficultyClass string

const (
	DifficultyVeryEasy DifficultyClass = "very-easy" // Light Blue / Level 1
	DifficultyEasy     DifficultyClass = "easy"      // Green / Level 2
	DifficultyMedium   DifficultyClass = "medium"    // Yellow / Level 3
	DifficultyHard     DifficultyClass = "hard"      // Light Red / Level 4
)

// AllDifficulties theo thứ tự từ dễ đến khó, dùng cho nhóm hiển thị
var AllDifficulties = []DifficultyClass{
	DifficultyVeryEasy,
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func (d DifficultyClass) Valid() bool {
	switch d {
	case DifficultyVeryEasy, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem là một bài trong danh mục dùng chung, chỉ admin được sửa.
// ID là số nguyên cấp phát thủ công: max(id hiện có)+1 khi thêm,
// chỉ số dòng khi import thay thế toàn bộ.
type Problem struct {
	ID              int             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Category        string          `gorm:"size:255" json:"category"`
	Name            string          `gorm:"type:text;not null" json:"name"`
	Link            string          `gorm:"type:text" json:"link"`
	DifficultyClass DifficultyClass `gorm:"type:varchar(20);not null;default:'medium'" json:"difficulty_class"`
	LastUpdated     time.Time       `json:"last_updated"`
}
