package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and strips every whitespace character.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName reports whether the normalized name contains any of matchers.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// CollapseSpace trims s and folds every run of whitespace into one space.
func CollapseSpace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// TitleCase upper cases the first letter of every word and lower cases
// the rest.
func TitleCase(s string) string {
	// casers are stateful, so one is made per call
	return cases.Title(language.English).String(s)
}

// FolderToName turns a dataset folder such as `goldman-sachs` into a
// display name such as `Goldman Sachs`.
func FolderToName(folder string) string {
	folder = strings.ReplaceAll(folder, "-", " ")
	folder = strings.ReplaceAll(folder, "_", " ")
	return TitleCase(folder)
}
