// internal/core/domain/category.go
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxCategoryNameLen        = 100
	maxCategoryDescriptionLen = 500
)

// Category groups products by reference: products store the category
// id, the category does not track its products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory creates an active category with a generated id.
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Activate makes the category available for product assignment.
func (c *Category) Activate() {
	c.IsActive = true
	c.touch()
}

// Deactivate blocks new product assignments to the category.
func (c *Category) Deactivate() {
	c.IsActive = false
	c.touch()
}

// UpdateInfo replaces name and description after re-validation.
func (c *Category) UpdateInfo(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateCategoryDescription(description); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = strings.TrimSpace(description)
	c.touch()
	return nil
}

func (c *Category) touch() {
	c.UpdatedAt = time.Now().UTC()
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name cannot be empty", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return fmt.Errorf("%w: category name cannot exceed %d characters", ErrInvalidArgument, maxCategoryNameLen)
	}
	return nil
}

func validateCategoryDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxCategoryDescriptionLen {
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrInvalidArgument, maxCategoryDescriptionLen)
	}
	return nil
}
