// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/repositories"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/messaging"
)

// TemplateService orchestrates page template operations
type TemplateService struct {
	templateRepo repositories.TemplateRepository
	composer     *domainservices.SlotComposer
	ids          builder.IDSource
	publisher    messaging.SavePublisher
}

// NewTemplateService creates a new page template application service
func NewTemplateService(templateRepo repositories.TemplateRepository, composer *domainservices.SlotComposer, ids builder.IDSource, publisher messaging.SavePublisher) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		composer:     composer,
		ids:          ids,
		publisher:    publisher,
	}
}

// GetAll returns all page templates (cache-first)
func (s *TemplateService) GetAll() ([]*content.PageTemplateNode, error) {
	templates, err := s.templateRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all templates: %w", err)
	}
	return templates, nil
}

// GetByID returns a page template by ID (cache-first)
func (s *TemplateService) GetByID(id string) (*content.PageTemplateNode, error) {
	if id == "" {
		return nil, fmt.Errorf("template ID cannot be empty")
	}

	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template %s: %w", id, err)
	}
	return template, nil
}

// GetBySlug returns a page template by slug (cache-first)
func (s *TemplateService) GetBySlug(slug string) (*content.PageTemplateNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("template slug cannot be empty")
	}

	template, err := s.templateRepo.FindBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get template by slug %s: %w", slug, err)
	}
	return template, nil
}

// EffectiveDefinition resolves the document a template contributes to
// composition. A template whose stored definition carries no slot gets the
// synthesized fallback layout built from its menu and footer slugs.
func (s *TemplateService) EffectiveDefinition(template *content.PageTemplateNode) *builder.Document {
	if template.Definition != nil {
		if slot := s.composer.FindSlot(template.Definition); slot != nil {
			return template.Definition
		}
	}
	return s.composer.FallbackTemplate(template.Menu, template.Footer)
}

// Create creates a new page template
func (s *TemplateService) Create(template *content.PageTemplateNode) error {
	if template == nil {
		return fmt.Errorf("template cannot be nil")
	}
	if template.Title == "" {
		return fmt.Errorf("template title cannot be empty")
	}
	if err := ValidateSlug(template.Slug); err != nil {
		return err
	}

	existing, err := s.templateRepo.FindBySlug(template.Slug)
	if err != nil {
		return fmt.Errorf("failed to check slug %s: %w", template.Slug, err)
	}
	if existing != nil {
		return fmt.Errorf("slug %q is already in use", template.Slug)
	}

	if template.ID == "" {
		template.ID = s.ids()
	}

	if err := s.templateRepo.Store(template); err != nil {
		return fmt.Errorf("failed to create template %s: %w", template.ID, err)
	}

	s.notifySaved(template)
	return nil
}

// Update updates an existing page template
func (s *TemplateService) Update(template *content.PageTemplateNode) error {
	if template == nil {
		return fmt.Errorf("template cannot be nil")
	}
	if template.ID == "" {
		return fmt.Errorf("template ID cannot be empty")
	}
	if template.Title == "" {
		return fmt.Errorf("template title cannot be empty")
	}
	if err := ValidateSlug(template.Slug); err != nil {
		return err
	}

	// Verify template exists before updating
	existing, err := s.templateRepo.FindByID(template.ID)
	if err != nil {
		return fmt.Errorf("failed to verify template %s exists: %w", template.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("template %s not found", template.ID)
	}

	if bySlug, err := s.templateRepo.FindBySlug(template.Slug); err != nil {
		return fmt.Errorf("failed to check slug %s: %w", template.Slug, err)
	} else if bySlug != nil && bySlug.ID != template.ID {
		return fmt.Errorf("slug %q is already in use", template.Slug)
	}

	if err := s.templateRepo.Update(template); err != nil {
		return fmt.Errorf("failed to update template %s: %w", template.ID, err)
	}

	s.notifySaved(template)
	return nil
}

// Delete deletes a page template
func (s *TemplateService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("template ID cannot be empty")
	}

	// Verify template exists before deleting
	existing, err := s.templateRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify template %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("template %s not found", id)
	}

	if err := s.templateRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	return nil
}

func (s *TemplateService) notifySaved(template *content.PageTemplateNode) {
	if s.publisher != nil {
		s.publisher.BroadcastSaved("template", template.ID, template.Slug)
	}
}
