package usecases

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func normalizeSlug(s string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if len(slug) < 2 || len(slug) > 64 || !slugPattern.MatchString(slug) {
		return "", false
	}
	return slug, true
}
