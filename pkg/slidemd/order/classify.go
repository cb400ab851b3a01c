package order

import (
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

var (
	titleTextKeywords    = []string{"title", "heading", "header"}
	subtitleTextKeywords = []string{"subtitle", "subheading", "sub-title"}
)

// roleFromName applies the name-based rules shared by both classifiers.
func roleFromName(name string) (models.Role, bool) {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "title") && !strings.Contains(name, "subtitle"):
		return models.RoleTitle, true
	case strings.Contains(name, "subtitle") || strings.Contains(name, "sub-title"):
		return models.RoleSubtitle, true
	case strings.Contains(name, "slide number"):
		return models.RoleSlideNumber, true
	}
	return "", false
}

// Classify assigns a role to a single shape without any slide context:
// name rules first, then text content, then shape kind.
func Classify(shape *models.Shape) models.Role {
	if shape == nil {
		return models.RoleOther
	}
	if role, ok := roleFromName(shape.Name); ok {
		return role
	}

	if text := strings.ToLower(strings.TrimSpace(shape.TextContent())); text != "" {
		switch {
		case len([]rune(text)) < 100 && containsAny(text, titleTextKeywords):
			return models.RoleTitle
		case containsAny(text, subtitleTextKeywords):
			return models.RoleSubtitle
		case len([]rune(text)) > 10:
			return models.RoleContent
		default:
			return models.RoleOther
		}
	}

	switch shape.Kind {
	case models.KindPicture, models.KindChart, models.KindTable:
		return models.RoleContent
	}
	return models.RoleOther
}

// bucketRole assigns the role used while partitioning the semantic order and
// reports which bucket the shape belongs to.
func bucketRole(shape *models.Shape) (models.Role, bucket) {
	if role, ok := roleFromName(shape.Name); ok {
		switch role {
		case models.RoleTitle:
			return role, bucketTitle
		case models.RoleSubtitle:
			if shape.HasText() || shape.HasTable() || shape.HasChart() {
				return role, bucketContent
			}
			return role, bucketOther
		case models.RoleSlideNumber:
			return role, bucketNone
		}
	}
	if shape.HasText() || shape.HasTable() || shape.HasChart() {
		return models.RoleContent, bucketContent
	}
	return models.RoleOther, bucketOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
