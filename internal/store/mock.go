package store

import (
	"hsaledger/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing.
type MockCategoryStore struct {
	Categories []models.CategoryConfig
	Saved      []models.CategoryConfig

	// Error flags for testing error conditions
	LoadCategoriesError error
	SaveCategoriesError error
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// SaveCategories records the categories it was asked to save.
func (m *MockCategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.Saved = append([]models.CategoryConfig(nil), categories...)
	return nil
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockCategoryStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
