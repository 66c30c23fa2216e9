package categorizer

import "hsaledger/internal/models"

// CategoryStoreInterface defines the interface for category rule storage.
// This allows for dependency injection and easier testing.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}
