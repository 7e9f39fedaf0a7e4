package molecule

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xhad/molrmsd/internal/models"
)

var supported = []models.Format{
	models.FormatSDF,
	models.FormatMOL,
	models.FormatMOL2,
	models.FormatPDB,
	models.FormatXYZ,
}

type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s", e.Extension, filepath.Base(e.Path))
}

// SupportedFormats returns the format tags that can be loaded, in a stable
// order.
func SupportedFormats() []models.Format {
	out := make([]models.Format, len(supported))
	copy(out, supported)
	return out
}

// FormatFromPath determines the file format from the extension of path.
func FormatFromPath(path string) (models.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range supported {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Path: path, Extension: ext}
}
