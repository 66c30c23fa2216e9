// Package categorizer assigns expense categories from provider names
// and notes using keyword rules loaded from the category store.
package categorizer

import (
	"strings"

	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

// Categorizer matches provider names and notes against configured
// keyword rules. Rules are checked in configuration order and the
// first match wins, so specific rules (Prescription, Dental) sort
// before the generic Medical bucket.
type Categorizer struct {
	categories []models.CategoryConfig
	store      CategoryStoreInterface
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with rules loaded from the store.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	c := &Categorizer{
		categories: []models.CategoryConfig{},
		store:      store,
		logger:     logger,
	}
	c.loadCategories()
	return c
}

// Categorize returns the category whose keywords match the provider
// name or description. The second return value reports whether any
// rule matched; when none does the caller keeps its current category.
func (c *Categorizer) Categorize(provider, description string) (models.Category, bool) {
	if strings.TrimSpace(provider) == "" && strings.TrimSpace(description) == "" {
		return models.CategoryOther, false
	}

	providerUpper := strings.ToUpper(provider)
	descriptionUpper := strings.ToUpper(description)

	for _, categoryConfig := range c.categories {
		category := models.Category(categoryConfig.Name)
		if !category.IsValid() {
			// A misconfigured rule must not invent categories
			continue
		}
		for _, keyword := range categoryConfig.Keywords {
			keywordUpper := strings.ToUpper(keyword)
			if strings.Contains(providerUpper, keywordUpper) || strings.Contains(descriptionUpper, keywordUpper) {
				c.logger.WithFields(
					logging.Field{Key: logging.FieldProvider, Value: provider},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: categoryConfig.Name},
				).Debug("Expense categorized by keyword")
				return category, true
			}
		}
	}

	return models.CategoryOther, false
}

// ReloadCategories reloads the rules from the store. This can be called
// when the underlying YAML file has been updated.
func (c *Categorizer) ReloadCategories() {
	c.loadCategories()
}

func (c *Categorizer) loadCategories() {
	categories, err := c.store.LoadCategories()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load category rules")
		return
	}
	c.categories = categories
	c.logger.WithField(logging.FieldCount, len(categories)).Debug("Loaded category rules")
}
