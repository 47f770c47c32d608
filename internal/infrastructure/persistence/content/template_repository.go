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

type TemplateRepository struct {
	db         *sql.DB
	cache      interfaces.ContentCache
	parser     *domainservices.DocumentParser
	serializer *domainservices.DocumentSerializer
	logger     *logging.ChanneledLogger
}

func NewTemplateRepository(db *sql.DB, cache interfaces.ContentCache, parser *domainservices.DocumentParser, serializer *domainservices.DocumentSerializer, logger *logging.ChanneledLogger) *TemplateRepository {
	return &TemplateRepository{
		db:         db,
		cache:      cache,
		parser:     parser,
		serializer: serializer,
		logger:     logger,
	}
}

func (r *TemplateRepository) FindByID(id string) (*content.PageTemplateNode, error) {
	if template, found := r.cache.GetTemplate(id); found {
		return template, nil
	}

	template, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	r.cache.SetTemplate(template)
	return template, nil
}

func (r *TemplateRepository) FindBySlug(slug string) (*content.PageTemplateNode, error) {
	if id, found := r.cache.GetTemplateIDBySlug(slug); found {
		return r.FindByID(id)
	}

	query := `SELECT id FROM page_templates WHERE slug = ?`

	start := time.Now()
	var id string
	err := r.db.QueryRow(query, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template slug: %w", err)
	}
	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}

	return r.FindByID(id)
}

// FindAll retrieves all page templates, employing a cache-first strategy.
func (r *TemplateRepository) FindAll() ([]*content.PageTemplateNode, error) {
	if ids, found := r.cache.GetAllTemplateIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.PageTemplateNode{}, nil
	}

	r.cache.SetAllTemplateIDs(ids)
	return r.FindByIDs(ids)
}

func (r *TemplateRepository) FindByIDs(ids []string) ([]*content.PageTemplateNode, error) {
	var result []*content.PageTemplateNode
	var missingIDs []string

	for _, id := range ids {
		if template, found := r.cache.GetTemplate(id); found {
			result = append(result, template)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missingTemplates, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}

		for _, template := range missingTemplates {
			r.cache.SetTemplate(template)
			result = append(result, template)
		}
	}

	return result, nil
}

func (r *TemplateRepository) Store(template *content.PageTemplateNode) error {
	definitionJSON, err := r.serializer.SerializeJSON(template.Definition)
	if err != nil {
		return fmt.Errorf("failed to serialize template definition: %w", err)
	}

	query := `INSERT INTO page_templates (id, slug, title, description, menu, footer, definition_payload)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing template insert", "id", template.ID)

	_, err = r.db.Exec(query, template.ID, template.Slug, template.Title,
		template.Description, template.Menu, template.Footer, string(definitionJSON))
	if err != nil {
		r.logger.Database().Error("Template insert failed", "error", err.Error(), "id", template.ID)
		return fmt.Errorf("failed to insert template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Template insert completed", "id", template.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetTemplate(template)
	r.cache.AddTemplateID(template.ID)
	return nil
}

func (r *TemplateRepository) Update(template *content.PageTemplateNode) error {
	definitionJSON, err := r.serializer.SerializeJSON(template.Definition)
	if err != nil {
		return fmt.Errorf("failed to serialize template definition: %w", err)
	}

	query := `UPDATE page_templates SET slug = ?, title = ?, description = ?, menu = ?, footer = ?, definition_payload = ?
	          WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing template update", "id", template.ID)

	_, err = r.db.Exec(query, template.Slug, template.Title, template.Description,
		template.Menu, template.Footer, string(definitionJSON), template.ID)
	if err != nil {
		r.logger.Database().Error("Template update failed", "error", err.Error(), "id", template.ID)
		return fmt.Errorf("failed to update template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Template update completed", "id", template.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateTemplate(template.ID)
	r.cache.SetTemplate(template)
	r.cache.AddTemplateID(template.ID)
	return nil
}

func (r *TemplateRepository) Delete(id string) error {
	query := `DELETE FROM page_templates WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing template delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Template delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Template delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateTemplate(id)
	return nil
}

func (r *TemplateRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM page_templates ORDER BY title`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query template IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templateIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan template ID: %w", err)
		}
		templateIDs = append(templateIDs, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded template IDs from database", "count", len(templateIDs), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return templateIDs, rows.Err()
}

func (r *TemplateRepository) loadFromDB(id string) (*content.PageTemplateNode, error) {
	query := `SELECT id, slug, title, description, menu, footer, definition_payload
	          FROM page_templates WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading template from database", "id", id)

	row := r.db.QueryRow(query, id)

	template, err := r.scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan template", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Template loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return template, nil
}

func (r *TemplateRepository) loadMultipleFromDB(ids []string) ([]*content.PageTemplateNode, error) {
	if len(ids) == 0 {
		return []*content.PageTemplateNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, slug, title, description, menu, footer, definition_payload
	          FROM page_templates WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple templates", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []*content.PageTemplateNode
	for rows.Next() {
		template, err := r.scanTemplate(rows.Scan)
		if err != nil {
			// Skip malformed records but continue processing others
			continue
		}
		templates = append(templates, template)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple templates loaded from database", "requested", len(ids), "loaded", len(templates), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) scanTemplate(scan func(dest ...any) error) (*content.PageTemplateNode, error) {
	var template content.PageTemplateNode
	var description, menu, footer sql.NullString
	var definitionPayloadStr string

	err := scan(&template.ID, &template.Slug, &template.Title,
		&description, &menu, &footer, &definitionPayloadStr)
	if err != nil {
		return nil, err
	}

	template.Description = description.String
	template.Menu = menu.String
	template.Footer = footer.String

	var raw any
	if err := json.Unmarshal([]byte(definitionPayloadStr), &raw); err != nil {
		r.logger.Database().Warn("Template definition payload is not valid JSON, using default document", "id", template.ID)
		raw = nil
	}
	template.Definition = r.parser.Parse(raw)

	return &template, nil
}
