package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/webvision"
)

// Compile-time interface verification.
var _ webvision.WebsiteService = (*WebsiteService)(nil)

// WebsiteService implements webvision.WebsiteService using SQLite.
type WebsiteService struct {
	db *DB
}

// NewWebsiteService creates a new WebsiteService.
func NewWebsiteService(db *DB) *WebsiteService {
	return &WebsiteService{db: db}
}

// CreateWebsite persists a new website, assigning its ID and timestamps.
func (s *WebsiteService) CreateWebsite(ctx context.Context, site *webvision.Website) error {
	if site.Status == "" {
		site.Status = webvision.StatusActive
	}
	if site.Language == "" {
		site.Language = webvision.DefaultLanguage
	}
	if err := site.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	site.CreatedAt = now
	site.UpdatedAt = now

	keywords, err := marshalKeywords(site.Keywords)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO websites (url, brand_name, description, ai_description, favicon_url, keywords, language, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, site.URL, site.BrandName, site.Description, site.AIDescription, site.FaviconURL,
		keywords, site.Language, site.Status,
		site.CreatedAt.Format(time.RFC3339), site.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	site.ID = int(id)

	return nil
}

// FindWebsiteByID retrieves a website by ID.
func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id int) (*webvision.Website, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+websiteColumns+`
		FROM websites
		WHERE id = ?
	`, id)

	site, err := scanWebsite(row)
	if err == sql.ErrNoRows {
		return nil, webvision.Errorf(webvision.ENOTFOUND, "Website not found")
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// FindWebsites retrieves websites matching the filter, newest first, along
// with the total count of matching records.
func (s *WebsiteService) FindWebsites(ctx context.Context, filter webvision.WebsiteFilter) ([]*webvision.Website, int, error) {
	where, args := "1=1", []any{}
	if filter.Search != nil {
		pattern := "%" + strings.ToLower(*filter.Search) + "%"
		where += " AND (LOWER(brand_name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(url) LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM websites WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + websiteColumns + ` FROM websites WHERE ` + where + ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sites := []*webvision.Website{}
	for rows.Next() {
		site, err := scanWebsite(rows)
		if err != nil {
			return nil, 0, err
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sites, total, nil
}

// UpdateWebsite applies a partial update and stamps UpdatedAt.
func (s *WebsiteService) UpdateWebsite(ctx context.Context, id int, upd webvision.WebsiteUpdate) (*webvision.Website, error) {
	site, err := s.FindWebsiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.BrandName != nil {
		site.BrandName = *upd.BrandName
	}
	if upd.Description != nil {
		site.Description = *upd.Description
	}
	if upd.AIDescription != nil {
		site.AIDescription = *upd.AIDescription
	}
	if upd.Status != nil {
		site.Status = *upd.Status
	}
	if upd.Keywords != nil {
		site.Keywords = *upd.Keywords
	}
	if upd.Language != nil {
		site.Language = *upd.Language
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	site.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if site.UpdatedAt.Before(site.CreatedAt) {
		site.UpdatedAt = site.CreatedAt
	}

	keywords, err := marshalKeywords(site.Keywords)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE websites
		SET brand_name = ?, description = ?, ai_description = ?, favicon_url = ?, keywords = ?, language = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, site.BrandName, site.Description, site.AIDescription, site.FaviconURL,
		keywords, site.Language, site.Status, site.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return site, nil
}

// DeleteWebsite permanently removes a website.
func (s *WebsiteService) DeleteWebsite(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM websites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return webvision.Errorf(webvision.ENOTFOUND, "Website not found")
	}
	return nil
}

// CountWebsites returns the total number of stored websites.
func (s *WebsiteService) CountWebsites(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM websites`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

const websiteColumns = "id, url, brand_name, description, ai_description, favicon_url, keywords, language, status, created_at, updated_at"

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWebsite(row scanner) (*webvision.Website, error) {
	var site webvision.Website
	var keywords, createdAt, updatedAt string

	err := row.Scan(&site.ID, &site.URL, &site.BrandName, &site.Description,
		&site.AIDescription, &site.FaviconURL, &keywords, &site.Language,
		&site.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keywords), &site.Keywords); err != nil {
		return nil, fmt.Errorf("failed to parse keywords: %w", err)
	}
	if site.Keywords == nil {
		site.Keywords = []string{}
	}
	if site.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if site.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &site, nil
}

// marshalKeywords serializes keywords as a JSON array, never null.
func marshalKeywords(keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	b, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("failed to serialize keywords: %w", err)
	}
	return string(b), nil
}
