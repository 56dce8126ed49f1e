package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Food is a nutrition record. Nutrient values are kept as the decimal strings the
// store holds; an empty string means the value is unknown.
type Food struct {
	ID           int64     `json:"id"`
	ExternalID   string    `json:"externalId"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	NameEn       string    `json:"nameEn,omitempty"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory,omitempty"`
	ServingSize  string    `json:"servingSize,omitempty"`
	ServingLabel string    `json:"servingLabel,omitempty"`
	Calories     string    `json:"calories,omitempty"`
	Protein      string    `json:"protein,omitempty"`
	Carbs        string    `json:"carbs,omitempty"`
	Fat          string    `json:"fat,omitempty"`
	Fiber        string    `json:"fiber,omitempty"`
	Sugar        string    `json:"sugar,omitempty"`
	Sodium       string    `json:"sodium,omitempty"`
	Cholesterol  string    `json:"cholesterol,omitempty"`
	Potassium    string    `json:"potassium,omitempty"`
	Calcium      string    `json:"calcium,omitempty"`
	Iron         string    `json:"iron,omitempty"`
	VitaminC     string    `json:"vitaminC,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CachedAt     time.Time `json:"cachedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CaloriesRounded returns the per-serving calorie count rounded to the nearest integer.
func (f Food) CaloriesRounded() (int, bool) {
	v, ok := Number(f.Calories)
	if !ok {
		return 0, false
	}
	return int(math.Round(v)), true
}

// Serving returns the human serving label, falling back to the gram amount.
func (f Food) Serving() string {
	if f.ServingLabel != "" {
		return f.ServingLabel
	}
	if f.ServingSize != "" {
		return f.ServingSize + "g"
	}
	return "1 porsiyon"
}

// CategoryGroup is a main category with its ordered subcategories.
type CategoryGroup struct {
	MainCategory  string   `json:"mainCategory"`
	Subcategories []string `json:"subcategories"`
}

// Number parses a stored nutrient value. Blank or malformed values are absent.
func Number(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a nutrient value with at most one decimal place.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
