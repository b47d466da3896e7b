// Package assets provides the print stylesheet, document templates and
// landing page used by the booklet service.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - operator assets from a directory on disk
//	    └── AssetResolver     - custom-first, embedded fallback
//
// AssetResolver is what the converter uses. An operator can override a
// single asset (for example styles/default.css) and keep the rest built in.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # print stylesheets
//	├── templates/
//	│   └── {name}.html       # html/template document shells
//	└── pages/
//	    └── {name}.md         # Markdown pages served by the HTTP server
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
