// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"errors"
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
)

// ErrTemplateNotFound marks a composition request naming an unknown template.
var ErrTemplateNotFound = errors.New("template not found")

// CompositionService glues the slot composition and reverse-shift engines to
// stored page templates. The page editor edits the composed document; saving
// splits it back into page content and a template patch.
type CompositionService struct {
	templates  *TemplateService
	parser     *domainservices.DocumentParser
	composer   *domainservices.SlotComposer
	decomposer *domainservices.SlotDecomposer
}

// NewCompositionService creates a new composition application service
func NewCompositionService(templates *TemplateService, parser *domainservices.DocumentParser, composer *domainservices.SlotComposer, decomposer *domainservices.SlotDecomposer) *CompositionService {
	return &CompositionService{
		templates:  templates,
		parser:     parser,
		composer:   composer,
		decomposer: decomposer,
	}
}

// ComposePreview builds the full-page document the editor works on: the
// template's layout with the page content substituted into its slot.
func (s *CompositionService) ComposePreview(templateSlug string, rawContent any) (*builder.Document, error) {
	template, err := s.templates.GetBySlug(templateSlug)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateSlug)
	}

	definition := s.templates.EffectiveDefinition(template)
	pageContent := s.parser.Parse(rawContent)

	return s.composer.Compose(definition, pageContent), nil
}

// Decompose splits an edited composed document back into page content and a
// template patch against the named template's current definition. When slotID
// is empty the template's own slot placeholder decides it.
func (s *CompositionService) Decompose(templateSlug, slotID string, rawEdited any) (*domainservices.DecomposeResult, error) {
	template, err := s.templates.GetBySlug(templateSlug)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateSlug)
	}

	definition := s.templates.EffectiveDefinition(template)
	if slotID == "" {
		if slot := s.composer.FindSlot(definition); slot != nil {
			slotID = slot.ID
		}
	}

	edited := s.parser.Parse(rawEdited)
	return s.decomposer.Decompose(edited, definition, slotID)
}
