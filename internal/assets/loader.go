package assets

// TrackingTemplateName names the analytics script template.
const TrackingTemplateName = "tracking"

// AssetLoader defines the contract for loading page templates.
type AssetLoader interface {
	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// defaultLoader backs the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads an embedded template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
