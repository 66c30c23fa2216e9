package models

// CategoryConfig represents a category's keyword rules in the YAML file.
// The Name must be one of the fixed expense categories; keywords are
// matched case-insensitively against provider names and notes.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
