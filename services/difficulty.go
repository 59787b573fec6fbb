package services

import (
	"strings"

	"github.com/vnkhanh/dsa-tracker-backend/models"
)

// Một matcher nhận diện độ khó theo từ khóa xuất hiện trong text
type difficultyMatcher struct {
	keywords []string
	class    models.DifficultyClass
}

// Thứ tự có ý nghĩa: "very easy" phải được thử trước "easy",
// từ khóa độ khó trực tiếp đứng trước màu sắc / level
var difficultyMatchers = []difficultyMatcher{
	{[]string{"very easy", "very-easy"}, models.DifficultyVeryEasy},
	{[]string{"easy"}, models.DifficultyEasy},
	{[]string{"medium"}, models.DifficultyMedium},
	{[]string{"hard"}, models.DifficultyHard},
	{[]string{"light blue", "level 1"}, models.DifficultyVeryEasy},
	{[]string{"green", "level 2"}, models.DifficultyEasy},
	{[]string{"yellow", "level 3"}, models.DifficultyMedium},
	{[]string{"light red", "red", "level 4"}, models.DifficultyHard},
}

// ClassifyDifficulty đọc một giá trị text bất kỳ (cột difficulty hoặc tên
// category) và trả về lớp độ khó đầu tiên nhận diện được. Trả về ok=false
// khi không khớp matcher nào, bên gọi tự quyết định giá trị mặc định.
func ClassifyDifficulty(value string) (models.DifficultyClass, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for _, m := range difficultyMatchers {
		for _, kw := range m.keywords {
			if strings.Contains(v, kw) {
				return m.class, true
			}
		}
	}
	return "", false
}

// DifficultyOrDefault như ClassifyDifficulty nhưng rơi về medium khi không
// nhận diện được (bất biến: sau chuẩn hóa mọi bài đều có lớp độ khó)
func DifficultyOrDefault(value string) models.DifficultyClass {
	if class, ok := ClassifyDifficulty(value); ok {
		return class
	}
	return models.DifficultyMedium
}
