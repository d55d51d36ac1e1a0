package domain

import "strings"

// Category groups tasks.
type Category struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	UsageCount int    `json:"usage_count,omitempty" yaml:"usage_count,omitempty"`
}

// EntityID returns the server-assigned ID.
func (c Category) EntityID() string {
	return c.ID
}

// CategoryInput is the body sent to create or rename a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// Validate checks the input before it is sent to the backend.
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// CategoryLookup indexes categories by ID for display.
type CategoryLookup map[string]Category

// NewCategoryLookup builds a lookup from an ordered category list.
func NewCategoryLookup(categories []Category) CategoryLookup {
	lookup := make(CategoryLookup, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}
	return lookup
}

// NameOf returns the name of the task's category.
// A nil or dangling reference resolves to "", which callers render as no category.
func (l CategoryLookup) NameOf(t Task) string {
	if !t.HasCategory() {
		return ""
	}
	if c, ok := l[*t.CategoryID]; ok {
		return c.Name
	}
	return ""
}

// FindCategory resolves a category by ID first, then by case-insensitive name.
func FindCategory(categories []Category, idOrName string) (Category, bool) {
	for _, c := range categories {
		if c.ID == idOrName {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, idOrName) {
			return c, true
		}
	}
	return Category{}, false
}
