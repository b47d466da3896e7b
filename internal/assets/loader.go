package assets

// AssetLoader defines the contract for loading stylesheets, document
// templates and Markdown pages by name.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadPage loads a Markdown page by name (without .md extension).
	// Returns ErrPageNotFound if the page doesn't exist.
	LoadPage(name string) (string, error)
}
