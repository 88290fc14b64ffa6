package webvision

// Defaults applied by extractors when a page carries no usable metadata.
const (
	DefaultBrandName   = "Website"
	DefaultDescription = "No description available"
	DefaultLanguage    = "en"
)

// Metadata holds the metadata extracted from an HTML page.
type Metadata struct {
	// BrandName is the short human-readable site identity. Never empty.
	BrandName string

	// Description is the raw extracted description. Never empty.
	Description string

	// FaviconURL is an absolute URL resolved against the source page,
	// or empty if resolution failed.
	FaviconURL string

	// Keywords holds up to MaxKeywords entries from the keywords meta tag.
	Keywords []string

	// Language is the page language tag. Never empty.
	Language string
}

// Extractor derives structured metadata from an HTML page.
//
// Extract is total: malformed input is the expected case, not an exceptional
// one, so every sub-extraction degrades to a documented default instead of
// returning an error.
type Extractor interface {
	Extract(html string, sourceURL string) *Metadata
}
