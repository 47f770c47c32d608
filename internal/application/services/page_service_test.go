package services

import (
	"testing"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("about-us"))
	assert.NoError(t, ValidateSlug("page2"))

	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("About-Us"))
	assert.Error(t, ValidateSlug("-leading"))
	assert.Error(t, ValidateSlug("trailing-"))
	assert.Error(t, ValidateSlug("two--hyphens"))
	assert.Error(t, ValidateSlug("spaced slug"))

	for _, reserved := range []string{"admin", "login", "logout", "media", "api", "auth"} {
		assert.Error(t, ValidateSlug(reserved), "slug %q should be reserved", reserved)
	}
}

func TestPageCreateAssignsIDAndDefaults(t *testing.T) {
	repo := newFakePageRepo()
	publisher := &fakePublisher{}
	svc := NewPageService(repo, sequentialIDs("page"), publisher)

	page := &content.PageNode{Title: "About", Slug: "about"}
	require.NoError(t, svc.Create(page))

	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, content.PageStatusDraft, page.Status)
	assert.Nil(t, page.PublishedAt)
	assert.False(t, page.Created.IsZero())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, savedEvent{kind: "page", id: "page-1", slug: "about"}, publisher.events[0])
}

func TestPageCreateRejectsDuplicateSlug(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, sequentialIDs("page"), nil)

	require.NoError(t, svc.Create(&content.PageNode{Title: "First", Slug: "about"}))

	err := svc.Create(&content.PageNode{Title: "Second", Slug: "about"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestPagePublicationLifecycle(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, sequentialIDs("page"), nil)

	page := &content.PageNode{Title: "News", Slug: "news", Status: content.PageStatusPublished}
	require.NoError(t, svc.Create(page))
	require.NotNil(t, page.PublishedAt)
	firstPublished := *page.PublishedAt

	// Republishing keeps the original publication timestamp.
	time.Sleep(2 * time.Millisecond)
	page.Title = "News updated"
	require.NoError(t, svc.Update(page))
	require.NotNil(t, page.PublishedAt)
	assert.Equal(t, firstPublished, *page.PublishedAt)

	// Unpublishing clears it and forces draft status.
	page.Status = "archived"
	require.NoError(t, svc.Update(page))
	assert.Equal(t, content.PageStatusDraft, page.Status)
	assert.Nil(t, page.PublishedAt)

	// Publishing again starts a fresh publication timestamp.
	page.Status = content.PageStatusPublished
	require.NoError(t, svc.Update(page))
	require.NotNil(t, page.PublishedAt)
	assert.True(t, page.PublishedAt.After(firstPublished) || page.PublishedAt.Equal(firstPublished))
}

func TestGetPublishedBySlugHidesDrafts(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, sequentialIDs("page"), nil)

	require.NoError(t, svc.Create(&content.PageNode{Title: "Draft", Slug: "draft-page"}))
	require.NoError(t, svc.Create(&content.PageNode{Title: "Live", Slug: "live-page", Status: content.PageStatusPublished}))

	hidden, err := svc.GetPublishedBySlug("draft-page")
	require.NoError(t, err)
	assert.Nil(t, hidden)

	missing, err := svc.GetPublishedBySlug("no-such-page")
	require.NoError(t, err)
	assert.Nil(t, missing)

	live, err := svc.GetPublishedBySlug("live-page")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "Live", live.Title)
}

func TestPageUpdateRequiresExistingPage(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo, sequentialIDs("page"), nil)

	err := svc.Update(&content.PageNode{ID: "missing", Title: "Ghost", Slug: "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExtractBody(t *testing.T) {
	doc := builder.NewDocument()
	doc.Nodes = []*builder.Node{
		{
			ID:   "frame1",
			Type: builder.NodeTypeFrame,
			Nodes: []*builder.Node{
				{ID: "ed1", Type: builder.NodeTypeEditor, Data: map[string]any{"html": "<p>Hello</p>"}},
				{ID: "img1", Type: builder.NodeTypeImage, Data: map[string]any{"src": "/a.png"}},
			},
		},
		{ID: "txt1", Type: builder.NodeTypeText, Data: map[string]any{"text": "plain tail"}},
	}

	assert.Equal(t, "<p>Hello</p>\nplain tail", ExtractBody(doc))
	assert.Equal(t, "", ExtractBody(nil))
}
