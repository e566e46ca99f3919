package document

import "strings"

// fieldKey derives a document key from a Go field name by lower-casing and
// underscore-separating word boundaries (UpperCamelCase -> snake_case),
// matching the declarative document's naming convention (§3, §6) without
// requiring a struct tag on every one of internal/model's fields. A run of
// uppercase letters followed by a lowercase letter splits before the last
// uppercase letter, so "GithubID" becomes "github_id" and "URL" becomes
// "url".
func fieldKey(name string) string {
	var b strings.Builder

	runes := []rune(name)

	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if prevLower || (nextLower && runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
		}

		b.WriteRune(toLower(r))
	}

	return b.String()
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}

	return r
}
