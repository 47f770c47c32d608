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

// BlockTemplateService orchestrates reusable block template operations
type BlockTemplateService struct {
	blockRepo repositories.BlockTemplateRepository
	ids       builder.IDSource
	publisher messaging.SavePublisher
}

// NewBlockTemplateService creates a new block template application service
func NewBlockTemplateService(blockRepo repositories.BlockTemplateRepository, ids builder.IDSource, publisher messaging.SavePublisher) *BlockTemplateService {
	return &BlockTemplateService{
		blockRepo: blockRepo,
		ids:       ids,
		publisher: publisher,
	}
}

// GetAll returns all block templates (cache-first)
func (s *BlockTemplateService) GetAll() ([]*content.BlockTemplateNode, error) {
	blockTemplates, err := s.blockRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all block templates: %w", err)
	}
	return blockTemplates, nil
}

// GetByID returns a block template by ID (cache-first)
func (s *BlockTemplateService) GetByID(id string) (*content.BlockTemplateNode, error) {
	if id == "" {
		return nil, fmt.Errorf("block template ID cannot be empty")
	}

	blockTemplate, err := s.blockRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get block template %s: %w", id, err)
	}
	return blockTemplate, nil
}

// Instantiate returns a deep copy of the block template's nodes with fresh
// ids, ready for insertion into a page document.
func (s *BlockTemplateService) Instantiate(id string) ([]*builder.Node, error) {
	blockTemplate, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blockTemplate == nil {
		return nil, fmt.Errorf("block template %s not found", id)
	}
	if blockTemplate.Definition == nil {
		return []*builder.Node{}, nil
	}

	nodes := make([]*builder.Node, 0, len(blockTemplate.Definition.Nodes))
	for _, node := range blockTemplate.Definition.Nodes {
		nodes = append(nodes, node.CloneWithIDs(s.ids))
	}
	return nodes, nil
}

// Create creates a new block template
func (s *BlockTemplateService) Create(blockTemplate *content.BlockTemplateNode) error {
	if blockTemplate == nil {
		return fmt.Errorf("block template cannot be nil")
	}
	if blockTemplate.Title == "" {
		return fmt.Errorf("block template title cannot be empty")
	}
	if blockTemplate.ID == "" {
		blockTemplate.ID = s.ids()
	}

	if err := s.blockRepo.Store(blockTemplate); err != nil {
		return fmt.Errorf("failed to create block template %s: %w", blockTemplate.ID, err)
	}

	s.notifySaved(blockTemplate)
	return nil
}

// Update updates an existing block template
func (s *BlockTemplateService) Update(blockTemplate *content.BlockTemplateNode) error {
	if blockTemplate == nil {
		return fmt.Errorf("block template cannot be nil")
	}
	if blockTemplate.ID == "" {
		return fmt.Errorf("block template ID cannot be empty")
	}
	if blockTemplate.Title == "" {
		return fmt.Errorf("block template title cannot be empty")
	}

	// Verify block template exists before updating
	existing, err := s.blockRepo.FindByID(blockTemplate.ID)
	if err != nil {
		return fmt.Errorf("failed to verify block template %s exists: %w", blockTemplate.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("block template %s not found", blockTemplate.ID)
	}

	if err := s.blockRepo.Update(blockTemplate); err != nil {
		return fmt.Errorf("failed to update block template %s: %w", blockTemplate.ID, err)
	}

	s.notifySaved(blockTemplate)
	return nil
}

// Delete deletes a block template
func (s *BlockTemplateService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("block template ID cannot be empty")
	}

	// Verify block template exists before deleting
	existing, err := s.blockRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify block template %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("block template %s not found", id)
	}

	if err := s.blockRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete block template %s: %w", id, err)
	}
	return nil
}

func (s *BlockTemplateService) notifySaved(blockTemplate *content.BlockTemplateNode) {
	if s.publisher != nil {
		s.publisher.BroadcastSaved("blockTemplate", blockTemplate.ID, "")
	}
}
