package domain

import "strings"

// MyToolsCategory lists the signed-in account's bookmarked tools instead of a backend category.
const MyToolsCategory = "My Tools"

type ToolID string

type Tool struct {
	ID             ToolID
	Name           string
	TagLine        string
	LogoURL        string
	CategoryLabels []string
	IsBookmarked   bool
}

func (t Tool) HasCategory(label string) bool {
	for _, existing := range t.CategoryLabels {
		if strings.EqualFold(existing, label) {
			return true
		}
	}

	return false
}

// Matches is the case-insensitive substring test used for client-side filtering.
func (t Tool) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.TagLine), q)
}

func IsMyTools(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), MyToolsCategory)
}
