package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded styles when the custom directory lacks the requested style.
type AssetResolver struct {
	custom   StyleLoader // nil when no custom path is configured
	embedded StyleLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath
// selects the embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}
	return resolver, nil
}

// LoadStyle loads a style, preferring the custom directory.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ StyleLoader = (*AssetResolver)(nil)
