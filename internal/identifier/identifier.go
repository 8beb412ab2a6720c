// Package identifier folds file paths into the package-name key the linker uses to scope
// duplicate operation detection: two operations of the same name in different packages are not
// duplicates, but two in the same package are. Fragment names are checked by name alone.
package identifier

import (
	"path"
	"strings"

	"github.com/iancoleman/strcase"
)

// FormatPackageName folds a project-relative file path into a package name: directory separators
// become '.', the file name segment is dropped, and every remaining segment is sanitized to
// identifier characters via snake_case folding.
//
// For example "com/example/feed/GetFeed.graphql" folds to "com.example.feed". Every directory
// segment is kept, so "src/main/graphql/com/example/feed/GetFeed.graphql" folds to
// "src.main.graphql.com.example.feed".
func FormatPackageName(filePath string) string {
	dir := path.Dir(path.Clean(filePath))
	if dir == "." || dir == "/" {
		return ""
	}

	segments := strings.Split(dir, "/")
	folded := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		folded = append(folded, strcase.ToSnake(segment))
	}
	return strings.Join(folded, ".")
}

// FormatOperationKey is the linker's duplicate-detection key for an operation: the folded package
// name of the file it was declared in, joined with its name.
func FormatOperationKey(filePath, name string) string {
	pkg := FormatPackageName(filePath)
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
