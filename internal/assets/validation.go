package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name is safe to use as a file name.
// Empty names and names holding path separators or dots are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
