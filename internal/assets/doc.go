// Package assets provides the stylesheets embedded in standalone documents.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     - custom directory first, embedded as fallback
//
// The resolver only falls back when a style is missing from the custom
// directory. Validation and I/O errors are returned as-is.
//
// # Security
//
// Style names may not contain path separators or dots. FilesystemLoader
// also resolves symlinks and rejects any path outside its base directory.
package assets
