package webvision

import (
	"context"
	"time"
)

// Website field limits.
const (
	MaxBrandNameLen = 50
	MaxKeywords     = 10
)

// StatusActive is the lifecycle status assigned to newly analyzed websites.
const StatusActive = "active"

// Website represents an analyzed website record.
type Website struct {
	ID            int       `json:"id"`
	URL           string    `json:"url"`
	BrandName     string    `json:"brand_name"`
	Description   string    `json:"description"`
	AIDescription string    `json:"ai_description"`
	FaviconURL    string    `json:"favicon_url,omitempty"`
	Keywords      []string  `json:"keywords"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate returns an error if the website contains invalid fields.
func (w *Website) Validate() error {
	if w.URL == "" {
		return Errorf(EINVALID, "website URL required")
	}
	if w.BrandName == "" {
		return Errorf(EINVALID, "website brand name required")
	}
	if len(w.Keywords) > MaxKeywords {
		return Errorf(EINVALID, "website cannot have more than %d keywords", MaxKeywords)
	}
	return nil
}

// WebsiteFilter represents a filter for FindWebsites.
type WebsiteFilter struct {
	// Search matches case-insensitively against brand name, description,
	// or URL substrings, OR-combined.
	Search *string `json:"search"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WebsiteUpdate represents a partial update of editable website fields.
// Nil fields are left unchanged.
type WebsiteUpdate struct {
	BrandName     *string   `json:"brand_name"`
	Description   *string   `json:"description"`
	AIDescription *string   `json:"ai_description"`
	Status        *string   `json:"status"`
	Keywords      *[]string `json:"keywords"`
	Language      *string   `json:"language"`
}

// IsZero reports whether the update carries no fields.
func (u WebsiteUpdate) IsZero() bool {
	return u.BrandName == nil && u.Description == nil && u.AIDescription == nil &&
		u.Status == nil && u.Keywords == nil && u.Language == nil
}

// Stats summarizes the catalog for display. JSON field names match the
// payload the browser client consumes.
type Stats struct {
	TotalWebsites int        `json:"totalWebsites"`
	MostRecent    string     `json:"mostRecent"`
	LastAdded     *time.Time `json:"lastAdded"`
}

// WebsiteService represents the record store for website records.
type WebsiteService interface {
	// CreateWebsite persists a new website and assigns its ID and timestamps.
	CreateWebsite(ctx context.Context, site *Website) error

	// FindWebsiteByID retrieves a website by ID.
	// Returns ENOTFOUND if the website does not exist.
	FindWebsiteByID(ctx context.Context, id int) (*Website, error)

	// FindWebsites retrieves websites matching the filter, newest first,
	// along with the total count of matching records.
	FindWebsites(ctx context.Context, filter WebsiteFilter) ([]*Website, int, error)

	// UpdateWebsite applies a partial update and stamps UpdatedAt.
	// Returns ENOTFOUND if the website does not exist.
	UpdateWebsite(ctx context.Context, id int, upd WebsiteUpdate) (*Website, error)

	// DeleteWebsite permanently removes a website.
	// Returns ENOTFOUND if the website does not exist.
	DeleteWebsite(ctx context.Context, id int) error

	// CountWebsites returns the total number of stored websites.
	CountWebsites(ctx context.Context) (int, error)
}

// CatalogService orchestrates website analysis and fronts the record store
// for the operations exposed by the API.
type CatalogService interface {
	// AnalyzeAndStore fetches the page at a canonical URL, extracts and
	// enhances its metadata, and persists a new record.
	AnalyzeAndStore(ctx context.Context, url string) (*Website, error)

	// FindWebsites retrieves a page of websites plus the total count.
	FindWebsites(ctx context.Context, filter WebsiteFilter) ([]*Website, int, error)

	// FindWebsiteByID retrieves a website by ID.
	FindWebsiteByID(ctx context.Context, id int) (*Website, error)

	// UpdateWebsite applies a partial update.
	// Returns EINVALID if the update carries no fields.
	UpdateWebsite(ctx context.Context, id int, upd WebsiteUpdate) (*Website, error)

	// DeleteWebsite removes a website. Deleting a website that does not
	// exist is not an error.
	DeleteWebsite(ctx context.Context, id int) error

	// Stats summarizes the catalog. It never fails; internal errors
	// degrade to a zeroed stats object.
	Stats(ctx context.Context) *Stats
}
