// Package imagefile turns a user-selected image path into the binary payload
// and format tag stored alongside a post.
package imagefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gytech/flightdesk/internal/domain"
)

// formats maps accepted extensions to the stored format tag.
var formats = map[string]string{
	".png":  "png",
	".jpg":  "jpg",
	".jpeg": "jpg",
	".gif":  "gif",
	".bmp":  "bmp",
}

// Reader loads image files up to a configured size.
type Reader struct {
	maxBytes int64
}

func NewReader(maxBytes int64) *Reader {
	return &Reader{maxBytes: maxBytes}
}

// Read returns the file contents and format tag. Unknown extensions and
// oversized files are validation failures, not I/O errors.
func (r *Reader) Read(path string) ([]byte, string, error) {
	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, "", domain.Invalid("image", "unsupported format (png, jpg, gif, bmp)")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat image: %w", err)
	}
	if r.maxBytes > 0 && info.Size() > r.maxBytes {
		return nil, "", domain.Invalid("image", fmt.Sprintf("file exceeds %d bytes", r.maxBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	return data, format, nil
}
