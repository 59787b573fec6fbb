package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// RankedUser là một dòng trên bảng xếp hạng
type RankedUser struct {
	UID               uuid.UUID  `json:"uid"`
	DisplayName       string     `json:"display_name"`
	PhotoURL          string     `json:"photo_url"`
	CompletedProblems int        `json:"completed_problems"`
	TotalProblems     int        `json:"total_problems"`
	LastActive        *time.Time `json:"last_active"`
	Rank              int        `json:"rank"`
}

// RankUsers xếp hạng kiểu competition ("1224"): user đồng điểm chia sẻ một
// hạng, điểm khác tiếp theo nhận hạng nhảy qua cả nhóm đồng hạng. User chưa
// từng tham gia (0 bài hoàn thành và chưa hoạt động lần nào) không xuất hiện.
//
// Không phá thế đồng hạng bằng khóa phụ nào: thứ tự giữa các user đồng điểm
// giữ nguyên thứ tự đầu vào.
func RankUsers(users []models.User) []RankedUser {
	// sắp xếp ổn định theo số bài hoàn thành giảm dần
	ordered := make([]models.User, len(users))
	copy(ordered, users)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CompletedProblems > ordered[j].CompletedProblems
	})

	ranked := make([]RankedUser, 0, len(ordered))
	rank := 0
	tieCount := 0
	prevScore := 0

	for _, u := range ordered {
		if u.CompletedProblems == 0 && u.LastActive == nil {
			continue
		}

		switch {
		case rank == 0:
			rank = 1
			prevScore = u.CompletedProblems
		case u.CompletedProblems == prevScore:
			tieCount++
		default:
			// hạng mới nhảy qua toàn bộ nhóm đồng hạng trước đó
			rank += tieCount + 1
			tieCount = 0
			prevScore = u.CompletedProblems
		}

		displayName := u.DisplayName
		if displayName == "" {
			displayName = "Anonymous"
		}

		ranked = append(ranked, RankedUser{
			UID:               u.ID,
			DisplayName:       displayName,
			PhotoURL:          u.PhotoURL,
			CompletedProblems: u.CompletedProblems,
			TotalProblems:     u.TotalProblems,
			LastActive:        u.LastActive,
			Rank:              rank,
		})
	}
	return ranked
}

// SearchRanked lọc bảng xếp hạng theo tên hiển thị (không phân biệt hoa
// thường), chuỗi rỗng trả về nguyên danh sách. Hạng đã gán giữ nguyên.
func SearchRanked(list []RankedUser, term string) []RankedUser {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	filtered := make([]RankedUser, 0, len(list))
	for _, ru := range list {
		if strings.Contains(strings.ToLower(ru.DisplayName), term) {
			filtered = append(filtered, ru)
		}
	}
	return filtered
}
