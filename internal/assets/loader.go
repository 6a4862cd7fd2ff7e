package assets

// DefaultStyleName is the built-in style used by standalone documents.
const DefaultStyleName = "default"

// StyleLoader loads a CSS stylesheet by name, without the .css extension.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}
