// Package database provides schema bootstrap
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/security"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default content required for a fresh site to function.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	// Idempotently create the default menu.
	var menuID string
	err := db.QueryRow("SELECT id FROM menus WHERE title = 'Main'").Scan(&menuID)
	if err == sql.ErrNoRows {
		menuID = security.GenerateULID()
		linksPayload := `[{"label":"Home","href":"/","target":""}]`
		_, err = db.Exec(`INSERT INTO menus (id, title, theme, links_payload) VALUES (?, ?, ?, ?)`,
			menuID, "Main", "default", linksPayload)
		if err != nil {
			return fmt.Errorf("failed to insert default menu: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check for default menu: %w", err)
	}

	// Idempotently create the default page template. An empty definition
	// makes the template service synthesize the fallback layout.
	var templateExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM page_templates WHERE slug = 'default')").Scan(&templateExists)
	if err != nil {
		return fmt.Errorf("failed to check for default template: %w", err)
	}

	if !templateExists {
		templateID := security.GenerateULID()
		_, err = db.Exec(`INSERT INTO page_templates (id, slug, title, description, menu, footer, definition_payload) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			templateID, "default", "Default", "Default page layout", "main", "main", "{}")
		if err != nil {
			return fmt.Errorf("failed to insert default template: %w", err)
		}
	}

	// Idempotently create the home page. An empty blocks payload parses to
	// the minimal default document.
	var homeExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pages WHERE slug = 'home')").Scan(&homeExists)
	if err != nil {
		return fmt.Errorf("failed to check for home page: %w", err)
	}

	if !homeExists {
		pageID := security.GenerateULID()
		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO pages (id, title, slug, status, seo_title, seo_description, blocks_payload, created, changed) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			pageID, "Home", "home", "published", "", "", "{}", now, now)
		if err != nil {
			return fmt.Errorf("failed to insert home page: %w", err)
		}
	}

	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS pages (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, status TEXT NOT NULL DEFAULT 'draft', seo_title TEXT, seo_description TEXT, blocks_payload TEXT NOT NULL, published_at TIMESTAMP, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS page_templates (id TEXT PRIMARY KEY, slug TEXT NOT NULL UNIQUE, title TEXT NOT NULL, description TEXT, menu TEXT, footer TEXT, definition_payload TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS block_templates (id TEXT PRIMARY KEY, title TEXT NOT NULL, category TEXT, definition_payload TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS menus (id TEXT PRIMARY KEY, title TEXT NOT NULL, theme TEXT NOT NULL, links_payload TEXT NOT NULL)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_pages_slug ON pages(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status)`,
	`CREATE INDEX IF NOT EXISTS idx_page_templates_slug ON page_templates(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_block_templates_category ON block_templates(category)`,
}
