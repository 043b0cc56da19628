package markdown

import (
	"path/filepath"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
)

// FirstHeadingTitle returns the flattened text of the first top-level rank-1
// heading whose trimmed text is non-empty, or "" when no such heading exists.
// A heading that is present but empty or whitespace-only is treated as absent.
func FirstHeadingTitle(root gmast.Node, source []byte) string {
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		heading, ok := c.(*gmast.Heading)
		if !ok || heading.Level != 1 {
			continue
		}
		if title := strings.TrimSpace(FlattenText(heading, source)); title != "" {
			return title
		}
	}
	return ""
}

// TitleFromPath derives a title from the file stem (filename without
// extension). It never returns an empty string.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "Untitled"
	}
	return stem
}

// ResolveTitle applies the title priority chain: explicit metadata title,
// then first rank-1 heading, then file stem. The result is never empty.
func ResolveTitle(metaTitle string, root gmast.Node, source []byte, path string) string {
	if metaTitle != "" {
		return metaTitle
	}
	if title := FirstHeadingTitle(root, source); title != "" {
		return title
	}
	return TitleFromPath(path)
}
