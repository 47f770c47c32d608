// Package content provides content repositories
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/interfaces"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/pkg/config"
)

type PageRepository struct {
	db         *sql.DB
	cache      interfaces.ContentCache
	parser     *domainservices.DocumentParser
	serializer *domainservices.DocumentSerializer
	logger     *logging.ChanneledLogger
}

func NewPageRepository(db *sql.DB, cache interfaces.ContentCache, parser *domainservices.DocumentParser, serializer *domainservices.DocumentSerializer, logger *logging.ChanneledLogger) *PageRepository {
	return &PageRepository{
		db:         db,
		cache:      cache,
		parser:     parser,
		serializer: serializer,
		logger:     logger,
	}
}

func (r *PageRepository) FindByID(id string) (*content.PageNode, error) {
	if page, found := r.cache.GetPage(id); found {
		return page, nil
	}

	page, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	r.cache.SetPage(page)
	return page, nil
}

func (r *PageRepository) FindBySlug(slug string) (*content.PageNode, error) {
	if id, found := r.cache.GetPageIDBySlug(slug); found {
		return r.FindByID(id)
	}

	query := `SELECT id FROM pages WHERE slug = ?`

	start := time.Now()
	var id string
	err := r.db.QueryRow(query, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page slug: %w", err)
	}
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	return r.FindByID(id)
}

// FindAll retrieves all pages, employing a cache-first strategy.
func (r *PageRepository) FindAll() ([]*content.PageNode, error) {
	if ids, found := r.cache.GetAllPageIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.PageNode{}, nil
	}

	r.cache.SetAllPageIDs(ids)
	return r.FindByIDs(ids)
}

func (r *PageRepository) FindByIDs(ids []string) ([]*content.PageNode, error) {
	var result []*content.PageNode
	var missingIDs []string

	for _, id := range ids {
		if page, found := r.cache.GetPage(id); found {
			result = append(result, page)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missingPages, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}

		for _, page := range missingPages {
			r.cache.SetPage(page)
			result = append(result, page)
		}
	}

	return result, nil
}

func (r *PageRepository) Store(page *content.PageNode) error {
	blocksJSON, err := r.serializer.SerializeJSON(page.Blocks)
	if err != nil {
		return fmt.Errorf("failed to serialize page blocks: %w", err)
	}

	query := `INSERT INTO pages (id, title, slug, status, seo_title, seo_description, blocks_payload, published_at, created, changed)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing page insert", "id", page.ID)

	_, err = r.db.Exec(query, page.ID, page.Title, page.Slug, page.Status,
		page.SEOTitle, page.SEODescription, string(blocksJSON),
		page.PublishedAt, page.Created, page.Changed)
	if err != nil {
		r.logger.Database().Error("Page insert failed", "error", err.Error(), "id", page.ID)
		return fmt.Errorf("failed to insert page: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Page insert completed", "id", page.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetPage(page)
	r.cache.AddPageID(page.ID)
	return nil
}

func (r *PageRepository) Update(page *content.PageNode) error {
	blocksJSON, err := r.serializer.SerializeJSON(page.Blocks)
	if err != nil {
		return fmt.Errorf("failed to serialize page blocks: %w", err)
	}

	query := `UPDATE pages SET title = ?, slug = ?, status = ?, seo_title = ?, seo_description = ?,
	          blocks_payload = ?, published_at = ?, changed = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing page update", "id", page.ID)

	_, err = r.db.Exec(query, page.Title, page.Slug, page.Status,
		page.SEOTitle, page.SEODescription, string(blocksJSON),
		page.PublishedAt, page.Changed, page.ID)
	if err != nil {
		r.logger.Database().Error("Page update failed", "error", err.Error(), "id", page.ID)
		return fmt.Errorf("failed to update page: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Page update completed", "id", page.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidatePage(page.ID)
	r.cache.SetPage(page)
	r.cache.AddPageID(page.ID)
	return nil
}

func (r *PageRepository) Delete(id string) error {
	query := `DELETE FROM pages WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing page delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Page delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete page: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Page delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidatePage(id)
	return nil
}

func (r *PageRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM pages ORDER BY title`

	start := time.Now()
	r.logger.Database().Debug("Loading all page IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query page IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pageIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan page ID: %w", err)
		}
		pageIDs = append(pageIDs, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded page IDs from database", "count", len(pageIDs), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return pageIDs, rows.Err()
}

func (r *PageRepository) loadFromDB(id string) (*content.PageNode, error) {
	query := `SELECT id, title, slug, status, seo_title, seo_description, blocks_payload, published_at, created, changed
	          FROM pages WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading page from database", "id", id)

	row := r.db.QueryRow(query, id)

	page, err := r.scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan page", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan page: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Page loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return page, nil
}

func (r *PageRepository) loadMultipleFromDB(ids []string) ([]*content.PageNode, error) {
	if len(ids) == 0 {
		return []*content.PageNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, title, slug, status, seo_title, seo_description, blocks_payload, published_at, created, changed
	          FROM pages WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple pages from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple pages", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []*content.PageNode
	for rows.Next() {
		page, err := r.scanPage(rows.Scan)
		if err != nil {
			// Skip malformed records but continue processing others
			continue
		}
		pages = append(pages, page)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple pages loaded from database", "requested", len(ids), "loaded", len(pages), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return pages, rows.Err()
}

func (r *PageRepository) scanPage(scan func(dest ...any) error) (*content.PageNode, error) {
	var page content.PageNode
	var seoTitle, seoDescription sql.NullString
	var blocksPayloadStr string
	var publishedAt, changed sql.NullTime

	err := scan(&page.ID, &page.Title, &page.Slug, &page.Status,
		&seoTitle, &seoDescription, &blocksPayloadStr,
		&publishedAt, &page.Created, &changed)
	if err != nil {
		return nil, err
	}

	page.SEOTitle = seoTitle.String
	page.SEODescription = seoDescription.String
	if publishedAt.Valid {
		page.PublishedAt = &publishedAt.Time
	}
	if changed.Valid {
		page.Changed = &changed.Time
	}

	// Parsing is total: a corrupt payload degrades to the default document
	// instead of failing the read.
	var raw any
	if err := json.Unmarshal([]byte(blocksPayloadStr), &raw); err != nil {
		r.logger.Database().Warn("Page blocks payload is not valid JSON, using default document", "id", page.ID)
		raw = nil
	}
	page.Blocks = r.parser.Parse(raw)

	return &page, nil
}
