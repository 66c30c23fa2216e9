package store

import (
	"os"
	"path/filepath"
	"testing"

	"hsaledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	assert.NoError(t, err)
}

func TestNewCategoryStore(t *testing.T) {
	s := NewCategoryStore("categories.yaml")
	assert.Equal(t, "categories.yaml", s.CategoriesFile)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	testFile := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(testFile, []byte("test content"), 0600)
	assert.NoError(t, err)

	s := NewCategoryStore("")

	// Absolute path that exists
	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	// Absolute path that doesn't exist
	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadCategories_TopLevelFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	content := `categories:
  - name: Dental
    keywords: ["dental", "dentist"]
  - name: Vision
    keywords: ["optical"]
`
	writeFile(t, file, content)

	s := NewCategoryStore(file)
	cats, err := s.LoadCategories()
	assert.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Dental", cats[0].Name)
	assert.Equal(t, []string{"dental", "dentist"}, cats[0].Keywords)
	assert.Equal(t, "Vision", cats[1].Name)
}

func TestLoadCategories_BareArrayFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	content := `- name: Prescription
  keywords: ["pharmacy", "rx"]
- name: Medical
  keywords: ["clinic"]
`
	writeFile(t, file, content)

	s := NewCategoryStore(file)
	cats, err := s.LoadCategories()
	assert.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Prescription", cats[0].Name)
}

func TestLoadCategories_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	s := NewCategoryStore(filepath.Join(dir, "missing.yaml"))
	cats, err := s.LoadCategories()
	assert.NoError(t, err)
	assert.Equal(t, DefaultCategories(), cats)
}

func TestLoadCategories_Malformed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	writeFile(t, file, `{malformed: yaml: content}`)

	s := NewCategoryStore(file)
	_, err := s.LoadCategories()
	assert.Error(t, err)
}

func TestSaveAndReloadCategories(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "categories.yaml")

	custom := []models.CategoryConfig{
		{Name: "Dental", Keywords: []string{"dental", "smile studio"}},
		{Name: "Vision", Keywords: []string{"optical"}},
	}

	s := NewCategoryStore(file)
	err := s.SaveCategories(custom)
	assert.NoError(t, err)

	reloaded, err := s.LoadCategories()
	assert.NoError(t, err)
	assert.Equal(t, custom, reloaded)
}

func TestDefaultCategories(t *testing.T) {
	defaults := DefaultCategories()
	assert.NotEmpty(t, defaults)

	// Every default names a valid category and carries keywords
	for _, c := range defaults {
		assert.True(t, models.Category(c.Name).IsValid(), "default category %q must be valid", c.Name)
		assert.NotEmpty(t, c.Keywords, "default category %q must carry keywords", c.Name)
	}

	// Specific rules sort before the generic Medical bucket
	assert.Equal(t, string(models.CategoryPrescription), defaults[0].Name)
	assert.Equal(t, string(models.CategoryMedical), defaults[len(defaults)-1].Name)
}

func TestMockCategoryStore(t *testing.T) {
	mock := &MockCategoryStore{
		Categories: []models.CategoryConfig{{Name: "Vision", Keywords: []string{"optical"}}},
	}

	cats, err := mock.LoadCategories()
	assert.NoError(t, err)
	assert.Len(t, cats, 1)

	err = mock.SaveCategories(cats)
	assert.NoError(t, err)
	assert.Equal(t, cats, mock.Saved)

	mock.LoadCategoriesError = os.ErrPermission
	_, err = mock.LoadCategories()
	assert.Error(t, err)
}
