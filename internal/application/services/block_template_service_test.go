package services

import (
	"testing"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heroBlockDefinition() *builder.Document {
	doc := builder.NewDocument()
	doc.Nodes = []*builder.Node{
		{
			ID:   "hero-frame",
			Type: builder.NodeTypeFrame,
			Nodes: []*builder.Node{
				{ID: "hero-heading", Type: builder.NodeTypeText, Data: map[string]any{"text": "Welcome"}},
				{ID: "hero-cta", Type: builder.NodeTypeButton, Data: map[string]any{"label": "Start"}},
			},
		},
	}
	return doc
}

func TestInstantiateGeneratesFreshIDs(t *testing.T) {
	repo := newFakeBlockTemplateRepo()
	repo.blocks["hero"] = &content.BlockTemplateNode{
		ID:         "hero",
		Title:      "Hero",
		Definition: heroBlockDefinition(),
	}
	svc := NewBlockTemplateService(repo, sequentialIDs("fresh"), nil)

	nodes, err := svc.Instantiate("hero")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, "fresh-1", nodes[0].ID)
	require.Len(t, nodes[0].Nodes, 2)
	assert.Equal(t, "fresh-2", nodes[0].Nodes[0].ID)
	assert.Equal(t, "fresh-3", nodes[0].Nodes[1].ID)

	// The stored definition keeps its original ids.
	assert.Equal(t, "hero-frame", repo.blocks["hero"].Definition.Nodes[0].ID)
}

func TestInstantiateLeavesContentIntact(t *testing.T) {
	repo := newFakeBlockTemplateRepo()
	repo.blocks["hero"] = &content.BlockTemplateNode{
		ID:         "hero",
		Title:      "Hero",
		Definition: heroBlockDefinition(),
	}
	svc := NewBlockTemplateService(repo, sequentialIDs("fresh"), nil)
	serializer := domainservices.NewDocumentSerializer()

	nodes, err := svc.Instantiate("hero")
	require.NoError(t, err)

	instance := builder.NewDocument()
	instance.Nodes = nodes

	// Ids differ, but the id-stripped shape matches the definition.
	assert.Equal(t,
		serializer.Comparable(repo.blocks["hero"].Definition),
		serializer.Comparable(instance))
}

func TestInstantiateUnknownBlockTemplate(t *testing.T) {
	svc := NewBlockTemplateService(newFakeBlockTemplateRepo(), sequentialIDs("fresh"), nil)

	_, err := svc.Instantiate("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInstantiateEmptyDefinition(t *testing.T) {
	repo := newFakeBlockTemplateRepo()
	repo.blocks["bare"] = &content.BlockTemplateNode{ID: "bare", Title: "Bare"}
	svc := NewBlockTemplateService(repo, sequentialIDs("fresh"), nil)

	nodes, err := svc.Instantiate("bare")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}
