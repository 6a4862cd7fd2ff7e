package textdown

import "errors"

// Sentinel errors for library operations.
var (
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrUnknownTheme     = errors.New("unknown highlight theme")
	ErrInvalidLang      = errors.New("invalid language tag")
)
