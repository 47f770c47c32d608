// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/persistence/database"
)

// DBService handles database connectivity and health checking
type DBService struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewDBService creates a new database service
func NewDBService(db *database.DB, logger *logging.ChanneledLogger) *DBService {
	return &DBService{
		db:     db,
		logger: logger,
	}
}

// CheckStatus performs basic database health check
func (d *DBService) CheckStatus() map[string]any {
	result := map[string]any{
		"status":    "checking",
		"timestamp": time.Now().UTC(),
	}

	if d.db == nil || d.db.DB == nil {
		result["status"] = "error"
		result["error"] = "no database connection"
		return result
	}

	var testResult int
	err := d.db.QueryRow("SELECT 1").Scan(&testResult)
	if err != nil {
		result["status"] = "error"
		result["error"] = fmt.Sprintf("connection test failed: %v", err)
		return result
	}

	requiredTables := []string{"pages", "page_templates", "block_templates", "menus"}

	tableStatus := make(map[string]bool)
	allTablesExist := true

	for _, table := range requiredTables {
		exists := d.tableExists(table)
		tableStatus[table] = exists
		if !exists {
			allTablesExist = false
		}
	}

	result["status"] = "healthy"
	result["allTablesExist"] = allTablesExist
	result["tableStatus"] = tableStatus

	if !allTablesExist {
		result["status"] = "degraded"
		result["warning"] = "some tables missing"
	}

	return result
}

// GetConnectionStats returns database connection pool statistics
func (d *DBService) GetConnectionStats() map[string]any {
	if d.db == nil || d.db.DB == nil {
		return map[string]any{"available": false}
	}

	stats := d.db.Stats()
	return map[string]any{
		"available": true,
		"openConns": stats.OpenConnections,
		"inUse":     stats.InUse,
		"idle":      stats.Idle,
	}
}

// tableExists checks if a table exists
func (d *DBService) tableExists(tableName string) bool {
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	var count int
	if err := d.db.QueryRow(query, tableName).Scan(&count); err != nil {
		return false
	}
	return count > 0
}
