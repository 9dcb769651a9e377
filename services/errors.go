package services

import (
	"errors"
	"fmt"

	"blog-engagement/models"

	"gorm.io/gorm"
)

func articleNotFound() error {
	return models.NewNotFoundError("article not found")
}

// translateArticleError maps repository errors for article lookups onto the
// service error types.
func translateArticleError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return articleNotFound()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewValidationError("article name is already taken", nil)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
