package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// maxAssetNameLen bounds names taken from configuration.
const maxAssetNameLen = 64

// ValidateAssetName checks that name is usable as a bare file stem: no path
// separators, no dots, no control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLen {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidAssetName, maxAssetNameLen)
	}
	if strings.ContainsAny(name, "/\\.") || strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
