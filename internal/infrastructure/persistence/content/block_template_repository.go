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

type BlockTemplateRepository struct {
	db         *sql.DB
	cache      interfaces.ContentCache
	parser     *domainservices.DocumentParser
	serializer *domainservices.DocumentSerializer
	logger     *logging.ChanneledLogger
}

func NewBlockTemplateRepository(db *sql.DB, cache interfaces.ContentCache, parser *domainservices.DocumentParser, serializer *domainservices.DocumentSerializer, logger *logging.ChanneledLogger) *BlockTemplateRepository {
	return &BlockTemplateRepository{
		db:         db,
		cache:      cache,
		parser:     parser,
		serializer: serializer,
		logger:     logger,
	}
}

func (r *BlockTemplateRepository) FindByID(id string) (*content.BlockTemplateNode, error) {
	if blockTemplate, found := r.cache.GetBlockTemplate(id); found {
		return blockTemplate, nil
	}

	blockTemplate, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if blockTemplate == nil {
		return nil, nil
	}

	r.cache.SetBlockTemplate(blockTemplate)
	return blockTemplate, nil
}

// FindAll retrieves all block templates, employing a cache-first strategy.
func (r *BlockTemplateRepository) FindAll() ([]*content.BlockTemplateNode, error) {
	if ids, found := r.cache.GetAllBlockTemplateIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.BlockTemplateNode{}, nil
	}

	r.cache.SetAllBlockTemplateIDs(ids)
	return r.FindByIDs(ids)
}

func (r *BlockTemplateRepository) FindByIDs(ids []string) ([]*content.BlockTemplateNode, error) {
	var result []*content.BlockTemplateNode
	var missingIDs []string

	for _, id := range ids {
		if blockTemplate, found := r.cache.GetBlockTemplate(id); found {
			result = append(result, blockTemplate)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missing, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}

		for _, blockTemplate := range missing {
			r.cache.SetBlockTemplate(blockTemplate)
			result = append(result, blockTemplate)
		}
	}

	return result, nil
}

func (r *BlockTemplateRepository) Store(blockTemplate *content.BlockTemplateNode) error {
	definitionJSON, err := r.serializer.SerializeJSON(blockTemplate.Definition)
	if err != nil {
		return fmt.Errorf("failed to serialize block template definition: %w", err)
	}

	query := `INSERT INTO block_templates (id, title, category, definition_payload) VALUES (?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing block template insert", "id", blockTemplate.ID)

	_, err = r.db.Exec(query, blockTemplate.ID, blockTemplate.Title, blockTemplate.Category, string(definitionJSON))
	if err != nil {
		r.logger.Database().Error("Block template insert failed", "error", err.Error(), "id", blockTemplate.ID)
		return fmt.Errorf("failed to insert block template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Block template insert completed", "id", blockTemplate.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetBlockTemplate(blockTemplate)
	r.cache.AddBlockTemplateID(blockTemplate.ID)
	return nil
}

func (r *BlockTemplateRepository) Update(blockTemplate *content.BlockTemplateNode) error {
	definitionJSON, err := r.serializer.SerializeJSON(blockTemplate.Definition)
	if err != nil {
		return fmt.Errorf("failed to serialize block template definition: %w", err)
	}

	query := `UPDATE block_templates SET title = ?, category = ?, definition_payload = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing block template update", "id", blockTemplate.ID)

	_, err = r.db.Exec(query, blockTemplate.Title, blockTemplate.Category, string(definitionJSON), blockTemplate.ID)
	if err != nil {
		r.logger.Database().Error("Block template update failed", "error", err.Error(), "id", blockTemplate.ID)
		return fmt.Errorf("failed to update block template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Block template update completed", "id", blockTemplate.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetBlockTemplate(blockTemplate)
	r.cache.AddBlockTemplateID(blockTemplate.ID)
	return nil
}

func (r *BlockTemplateRepository) Delete(id string) error {
	query := `DELETE FROM block_templates WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing block template delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Block template delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete block template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Block template delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateBlockTemplate(id)
	return nil
}

func (r *BlockTemplateRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM block_templates ORDER BY category, title`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query block template IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query block templates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan block template ID: %w", err)
		}
		ids = append(ids, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded block template IDs from database", "count", len(ids), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return ids, rows.Err()
}

func (r *BlockTemplateRepository) loadFromDB(id string) (*content.BlockTemplateNode, error) {
	query := `SELECT id, title, category, definition_payload FROM block_templates WHERE id = ?`

	start := time.Now()
	row := r.db.QueryRow(query, id)

	blockTemplate, err := r.scanBlockTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan block template", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan block template: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Block template loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return blockTemplate, nil
}

func (r *BlockTemplateRepository) loadMultipleFromDB(ids []string) ([]*content.BlockTemplateNode, error) {
	if len(ids) == 0 {
		return []*content.BlockTemplateNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, title, category, definition_payload
	          FROM block_templates WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple block templates", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query block templates: %w", err)
	}
	defer rows.Close()

	var blockTemplates []*content.BlockTemplateNode
	for rows.Next() {
		blockTemplate, err := r.scanBlockTemplate(rows.Scan)
		if err != nil {
			// Skip malformed records but continue processing others
			continue
		}
		blockTemplates = append(blockTemplates, blockTemplate)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple block templates loaded from database", "requested", len(ids), "loaded", len(blockTemplates), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return blockTemplates, rows.Err()
}

func (r *BlockTemplateRepository) scanBlockTemplate(scan func(dest ...any) error) (*content.BlockTemplateNode, error) {
	var blockTemplate content.BlockTemplateNode
	var category sql.NullString
	var definitionPayloadStr string

	err := scan(&blockTemplate.ID, &blockTemplate.Title, &category, &definitionPayloadStr)
	if err != nil {
		return nil, err
	}

	blockTemplate.Category = category.String

	var raw any
	if err := json.Unmarshal([]byte(definitionPayloadStr), &raw); err != nil {
		r.logger.Database().Warn("Block template definition payload is not valid JSON, using default document", "id", blockTemplate.ID)
		raw = nil
	}
	blockTemplate.Definition = r.parser.Parse(raw)

	return &blockTemplate, nil
}
