// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/repositories"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/messaging"
)

// MenuService orchestrates menu operations with cache-first repository pattern
type MenuService struct {
	menuRepo  repositories.MenuRepository
	ids       builder.IDSource
	publisher messaging.SavePublisher
}

// NewMenuService creates a new menu application service
func NewMenuService(menuRepo repositories.MenuRepository, ids builder.IDSource, publisher messaging.SavePublisher) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		ids:       ids,
		publisher: publisher,
	}
}

// GetAll returns all menus (cache-first)
func (s *MenuService) GetAll() ([]*content.MenuNode, error) {
	menus, err := s.menuRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all menus: %w", err)
	}
	return menus, nil
}

// GetByID returns a menu by ID (cache-first)
func (s *MenuService) GetByID(id string) (*content.MenuNode, error) {
	if id == "" {
		return nil, fmt.Errorf("menu ID cannot be empty")
	}

	menu, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu %s: %w", id, err)
	}
	return menu, nil
}

// Create creates a new menu
func (s *MenuService) Create(menu *content.MenuNode) error {
	if menu == nil {
		return fmt.Errorf("menu cannot be nil")
	}
	if menu.Title == "" {
		return fmt.Errorf("menu title cannot be empty")
	}
	if menu.ID == "" {
		menu.ID = s.ids()
	}
	if menu.Theme == "" {
		menu.Theme = "default"
	}

	if err := s.menuRepo.Store(menu); err != nil {
		return fmt.Errorf("failed to create menu %s: %w", menu.ID, err)
	}

	s.notifySaved(menu)
	return nil
}

// Update updates an existing menu
func (s *MenuService) Update(menu *content.MenuNode) error {
	if menu == nil {
		return fmt.Errorf("menu cannot be nil")
	}
	if menu.ID == "" {
		return fmt.Errorf("menu ID cannot be empty")
	}
	if menu.Title == "" {
		return fmt.Errorf("menu title cannot be empty")
	}

	// Verify menu exists before updating
	existing, err := s.menuRepo.FindByID(menu.ID)
	if err != nil {
		return fmt.Errorf("failed to verify menu %s exists: %w", menu.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("menu %s not found", menu.ID)
	}

	if err := s.menuRepo.Update(menu); err != nil {
		return fmt.Errorf("failed to update menu %s: %w", menu.ID, err)
	}

	s.notifySaved(menu)
	return nil
}

// Delete deletes a menu
func (s *MenuService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("menu ID cannot be empty")
	}

	// Verify menu exists before deleting
	existing, err := s.menuRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify menu %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("menu %s not found", id)
	}

	if err := s.menuRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete menu %s: %w", id, err)
	}
	return nil
}

func (s *MenuService) notifySaved(menu *content.MenuNode) {
	if s.publisher != nil {
		s.publisher.BroadcastSaved("menu", menu.ID, "")
	}
}
