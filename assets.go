package textdown

import (
	"errors"

	"github.com/alnah/go-textdown/internal/assets"
)

// DefaultStyle is the name of the built-in style used in standalone mode.
const DefaultStyle = assets.DefaultStyleName

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// under errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel; internal errors stay unexported.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
