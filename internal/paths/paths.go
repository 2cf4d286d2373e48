package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InvalidPathError reports an input path with no usable base name, so no
// artifact name can be derived from it.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid input path %q: empty base name", e.Path)
}

// Derive maps an input media path to its artifact path under targetFolder:
// the input's base name with the extension swapped for targetExt. Pure
// function, no filesystem access.
func Derive(inputPath, targetFolder, targetExt string) (string, error) {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", &InvalidPathError{Path: inputPath}
	}
	return filepath.Join(targetFolder, base+targetExt), nil
}
