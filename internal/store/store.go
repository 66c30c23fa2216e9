// Package store provides loading and saving of the category keyword
// rules that drive provider-based categorization.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"hsaledger/internal/fileutils"
	"hsaledger/internal/logging"
	"hsaledger/internal/models"

	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStore manages loading and saving of category keyword rules.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a new store for category data. An empty
// filename means the default "categories.yaml" resolved through the
// standard locations.
func NewCategoryStore(categoriesFile string) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Fall back to the user's config directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "hsaledger", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads category keyword rules from the YAML file.
// When no file exists in any standard location the built-in defaults
// are returned, so categorization works out of the box.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filename).Debug("Categories file not found, using built-in defaults")
			return DefaultCategories(), nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 - resolved from the operator's config locations
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// The documented format carries a top-level "categories" key
	var categoriesConfig models.CategoriesConfig
	err = yaml.Unmarshal(data, &categoriesConfig)
	if err == nil && len(categoriesConfig.Categories) > 0 {
		log.WithFields(
			logging.Field{Key: logging.FieldCount, Value: len(categoriesConfig.Categories)},
			logging.Field{Key: logging.FieldFile, Value: filePath},
		).Debug("Loaded categories")
		return categoriesConfig.Categories, nil
	}

	// Also accept a bare array for hand-written files
	var categories []models.CategoryConfig
	err = yaml.Unmarshal(data, &categories)
	if err == nil && len(categories) > 0 {
		log.WithFields(
			logging.Field{Key: logging.FieldCount, Value: len(categories)},
			logging.Field{Key: logging.FieldFile, Value: filePath},
		).Debug("Loaded categories from bare array")
		return categories, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	log.WithField(logging.FieldFile, filePath).Warn("Categories file holds no categories, using built-in defaults")
	return DefaultCategories(), nil
}

// SaveCategories writes category keyword rules to the YAML file in the
// documented top-level format, creating parent directories as needed.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	// Prefer an existing file in the standard locations; otherwise
	// write to the name as given.
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		filePath = filename
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := fileutils.WriteFile(filePath, data, fileutils.FilePerm); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(categories)},
		logging.Field{Key: logging.FieldFile, Value: filePath},
	).Debug("Saved categories")
	return nil
}

// DefaultCategories returns the built-in keyword rules. Every name is
// one of the fixed expense categories; CategoryOther carries no
// keywords because it is the fallback, not a match target.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{
			Name: string(models.CategoryPrescription),
			Keywords: []string{
				"pharmacy", "prescription", "rx", "cvs", "walgreens", "rite aid",
			},
		},
		{
			Name: string(models.CategoryDental),
			Keywords: []string{
				"dental", "dentist", "orthodont", "endodont", "oral surgery",
			},
		},
		{
			Name: string(models.CategoryVision),
			Keywords: []string{
				"vision", "optical", "optometr", "ophthalmolog", "eyewear", "contact lens",
			},
		},
		{
			Name: string(models.CategoryMentalHealth),
			Keywords: []string{
				"therapy", "therapist", "counseling", "psychiatr", "psycholog", "behavioral health",
			},
		},
		{
			Name: string(models.CategoryMedical),
			Keywords: []string{
				"clinic", "hospital", "medical", "physician", "doctor", "urgent care",
				"laboratory", "imaging", "radiology", "dermatolog", "pediatric",
			},
		},
	}
}
