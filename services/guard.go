package services

import "blog-engagement/models"

// RequireAuthor fails with ErrorForbidden unless identity wrote article.
func RequireAuthor(article *models.Article, identity *models.Identity) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if !article.IsAuthor(identity.UserID) {
		return models.NewForbiddenError("only the author can modify this article")
	}
	return nil
}

func RequireIdentity(identity *models.Identity) error {
	if identity == nil || identity.UserID == 0 {
		return models.NewUnauthorizedError("authentication required")
	}
	return nil
}

// CanView applies the draft gate: drafts are visible to their author only.
func CanView(article *models.Article, identity *models.Identity) bool {
	if !article.IsDraft {
		return true
	}
	return identity != nil && article.IsAuthor(identity.UserID)
}
