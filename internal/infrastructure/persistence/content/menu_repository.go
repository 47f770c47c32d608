// Package content provides content repositories
package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/interfaces"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/pkg/config"
)

type MenuRepository struct {
	db     *sql.DB
	cache  interfaces.ContentCache
	logger *logging.ChanneledLogger
}

func NewMenuRepository(db *sql.DB, cache interfaces.ContentCache, logger *logging.ChanneledLogger) *MenuRepository {
	return &MenuRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *MenuRepository) FindByID(id string) (*content.MenuNode, error) {
	if menu, found := r.cache.GetMenu(id); found {
		return menu, nil
	}

	menu, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, nil
	}

	r.cache.SetMenu(menu)
	return menu, nil
}

// FindAll retrieves all menus, employing a cache-first strategy.
func (r *MenuRepository) FindAll() ([]*content.MenuNode, error) {
	if ids, found := r.cache.GetAllMenuIDs(); found {
		return r.FindByIDs(ids)
	}

	ids, err := r.loadAllIDsFromDB()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*content.MenuNode{}, nil
	}

	r.cache.SetAllMenuIDs(ids)
	return r.FindByIDs(ids)
}

func (r *MenuRepository) FindByIDs(ids []string) ([]*content.MenuNode, error) {
	var result []*content.MenuNode
	var missingIDs []string

	for _, id := range ids {
		if menu, found := r.cache.GetMenu(id); found {
			result = append(result, menu)
		} else {
			missingIDs = append(missingIDs, id)
		}
	}

	if len(missingIDs) > 0 {
		missingMenus, err := r.loadMultipleFromDB(missingIDs)
		if err != nil {
			return nil, err
		}

		for _, menu := range missingMenus {
			r.cache.SetMenu(menu)
			result = append(result, menu)
		}
	}

	return result, nil
}

func (r *MenuRepository) Store(menu *content.MenuNode) error {
	linksJSON, _ := json.Marshal(menu.Links)

	query := `INSERT INTO menus (id, title, theme, links_payload) VALUES (?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing menu insert", "id", menu.ID)

	_, err := r.db.Exec(query, menu.ID, menu.Title, menu.Theme, string(linksJSON))
	if err != nil {
		r.logger.Database().Error("Menu insert failed", "error", err.Error(), "id", menu.ID)
		return fmt.Errorf("failed to insert menu: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Menu insert completed", "id", menu.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetMenu(menu)
	r.cache.AddMenuID(menu.ID)
	return nil
}

func (r *MenuRepository) Update(menu *content.MenuNode) error {
	linksJSON, _ := json.Marshal(menu.Links)

	query := `UPDATE menus SET title = ?, theme = ?, links_payload = ? WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing menu update", "id", menu.ID)

	_, err := r.db.Exec(query, menu.Title, menu.Theme, string(linksJSON), menu.ID)
	if err != nil {
		r.logger.Database().Error("Menu update failed", "error", err.Error(), "id", menu.ID)
		return fmt.Errorf("failed to update menu: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Menu update completed", "id", menu.ID, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.SetMenu(menu)
	return nil
}

func (r *MenuRepository) Delete(id string) error {
	query := `DELETE FROM menus WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing menu delete", "id", id)

	_, err := r.db.Exec(query, id)
	if err != nil {
		r.logger.Database().Error("Menu delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Menu delete completed", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.cache.InvalidateMenu(id)
	return nil
}

func (r *MenuRepository) loadAllIDsFromDB() ([]string, error) {
	query := `SELECT id FROM menus ORDER BY title`

	start := time.Now()
	r.logger.Database().Debug("Loading all menu IDs from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query menu IDs", "error", err.Error())
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var menuIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan menu ID: %w", err)
		}
		menuIDs = append(menuIDs, id)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Loaded menu IDs from database", "count", len(menuIDs), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return menuIDs, rows.Err()
}

func (r *MenuRepository) loadFromDB(id string) (*content.MenuNode, error) {
	query := `SELECT id, title, theme, links_payload FROM menus WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading menu from database", "id", id)

	row := r.db.QueryRow(query, id)

	var menu content.MenuNode
	var linksPayloadStr string

	err := row.Scan(&menu.ID, &menu.Title, &menu.Theme, &linksPayloadStr)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan menu", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan menu: %w", err)
	}

	if err := json.Unmarshal([]byte(linksPayloadStr), &menu.Links); err != nil {
		r.logger.Database().Error("Failed to parse menu links payload", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to parse links payload: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Menu loaded from database", "id", id, "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &menu, nil
}

func (r *MenuRepository) loadMultipleFromDB(ids []string) ([]*content.MenuNode, error) {
	if len(ids) == 0 {
		return []*content.MenuNode{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `SELECT id, title, theme, links_payload
	          FROM menus WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	start := time.Now()
	r.logger.Database().Debug("Loading multiple menus from database", "count", len(ids))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query multiple menus", "error", err.Error(), "count", len(ids))
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	var menus []*content.MenuNode

	for rows.Next() {
		var menu content.MenuNode
		var linksPayloadStr string

		err := rows.Scan(&menu.ID, &menu.Title, &menu.Theme, &linksPayloadStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}

		if err := json.Unmarshal([]byte(linksPayloadStr), &menu.Links); err != nil {
			// Skip malformed records but continue processing others
			continue
		}

		menus = append(menus, &menu)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Multiple menus loaded from database", "requested", len(ids), "loaded", len(menus), "duration", duration)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return menus, rows.Err()
}
