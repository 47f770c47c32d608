package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
)

func TestContentStoreRoundTrip(t *testing.T) {
	store := NewContentStore(nil, time.Hour)

	store.SetPage(&content.PageNode{ID: "p1", Title: "Home", Slug: "home"})
	store.SetMenu(&content.MenuNode{ID: "m1", Title: "Main", Theme: "default"})
	store.SetAllPageIDs([]string{"p1"})

	page, ok := store.GetPage("p1")
	require.True(t, ok)
	assert.Equal(t, "home", page.Slug)

	id, ok := store.GetPageIDBySlug("home")
	require.True(t, ok)
	assert.Equal(t, "p1", id)

	ids, ok := store.GetAllPageIDs()
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, ids)

	_, ok = store.GetPage("missing")
	assert.False(t, ok)
}

func TestContentStoreTTLExpiry(t *testing.T) {
	store := NewContentStore(nil, 10*time.Millisecond)

	store.SetTemplate(&content.PageTemplateNode{ID: "t1", Slug: "default", Title: "Default"})

	_, ok := store.GetTemplate("t1")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = store.GetTemplate("t1")
	assert.False(t, ok)
	_, ok = store.GetTemplateIDBySlug("default")
	assert.False(t, ok)

	purged := store.PurgeExpired()
	assert.Equal(t, 1, purged)
	assert.Equal(t, 0, store.PurgeExpired())
}

func TestContentStoreInvalidation(t *testing.T) {
	store := NewContentStore(nil, time.Hour)

	store.SetPage(&content.PageNode{ID: "p1", Slug: "home"})
	store.SetPage(&content.PageNode{ID: "p2", Slug: "about"})
	store.SetAllPageIDs([]string{"p1", "p2"})

	store.InvalidatePage("p1")

	_, ok := store.GetPage("p1")
	assert.False(t, ok)
	_, ok = store.GetPageIDBySlug("home")
	assert.False(t, ok)

	ids, ok := store.GetAllPageIDs()
	require.True(t, ok)
	assert.Equal(t, []string{"p2"}, ids)

	_, ok = store.GetPage("p2")
	assert.True(t, ok)
}

func TestContentStoreIDListMaintenance(t *testing.T) {
	store := NewContentStore(nil, time.Hour)

	// No list cached until a full load sets it.
	_, ok := store.GetAllMenuIDs()
	assert.False(t, ok)

	store.SetAllMenuIDs([]string{"m1"})
	store.AddMenuID("m2")
	store.AddMenuID("m2") // duplicate add is a no-op

	ids, ok := store.GetAllMenuIDs()
	require.True(t, ok)
	assert.Equal(t, []string{"m1", "m2"}, ids)

	store.RemoveMenuID("m1")
	ids, _ = store.GetAllMenuIDs()
	assert.Equal(t, []string{"m2"}, ids)
}

func TestContentStoreInvalidateAll(t *testing.T) {
	store := NewContentStore(nil, time.Hour)

	store.SetPage(&content.PageNode{ID: "p1", Slug: "home"})
	store.SetBlockTemplate(&content.BlockTemplateNode{ID: "b1", Title: "Hero"})

	store.InvalidateAll()

	stats := store.GetStats()
	assert.Zero(t, stats.Pages)
	assert.Zero(t, stats.BlockTemplates)

	_, ok := store.GetPage("p1")
	assert.False(t, ok)
}
