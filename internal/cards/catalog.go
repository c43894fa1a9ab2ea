package cards

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// LoadCatalog reads the completion catalog: one card name per line,
// normalized on the way in, blanks and duplicates dropped, result sorted.
// A missing catalog file is not an error; completion simply has nothing to
// offer until a manifest installs one.
func LoadCatalog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read card catalog %s: %w", path, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		name := Normalize(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// WriteCatalog writes names as the completion catalog, one canonical ID per
// line, sorted for stable diffs.
func WriteCatalog(path string, names []string) error {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var b strings.Builder
	for _, name := range sorted {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write card catalog %s: %w", path, err)
	}
	return nil
}

// Suggestions returns the completion tokens from the catalog at path that
// match prefix, in slug form. Prefix matching happens on the slug, so typing
// "city_a" completes against "city_alpha". Errors are swallowed: completion
// must never break the shell.
func Suggestions(path, prefix string) []string {
	names, err := LoadCatalog(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range names {
		slug := Slug(name)
		if strings.HasPrefix(slug, strings.ToLower(prefix)) {
			out = append(out, slug)
		}
	}
	return out
}
