package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects empty names and names that could address a file
// outside the templates directory or change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
