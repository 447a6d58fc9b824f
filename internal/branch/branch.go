// Package branch generates branch names from issues and templates.
package branch

import (
	"strconv"
	"strings"
	"unicode"

	"ib/internal/github"
)

// maxLength caps generated branch names.
const maxLength = 60

// Generate substitutes {number} and {title} into template and caps the
// result at 60 characters. Only the first occurrence of each token is
// replaced. Pure and total: malformed templates produce odd but valid
// output rather than an error.
func Generate(issue github.Issue, template string) string {
	name := strings.Replace(template, "{number}", strconv.Itoa(issue.Number), 1)
	name = strings.Replace(name, "{title}", Slugify(issue.Title), 1)

	if len(name) > maxLength {
		return strings.TrimSuffix(name[:maxLength], "-")
	}
	return name
}

// Slugify lowercases a title and reduces it to hyphen-separated
// ASCII alphanumerics with no leading or trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	// Whitespace runs become single hyphens, then hyphen runs collapse.
	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
