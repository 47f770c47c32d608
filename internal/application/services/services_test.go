package services

import (
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
)

func sequentialIDs(prefix string) builder.IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type savedEvent struct {
	kind string
	id   string
	slug string
}

type fakePublisher struct {
	events []savedEvent
}

func (p *fakePublisher) BroadcastSaved(kind, id, slug string) {
	p.events = append(p.events, savedEvent{kind: kind, id: id, slug: slug})
}

type fakePageRepo struct {
	pages map[string]*content.PageNode
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{pages: make(map[string]*content.PageNode)}
}

func (r *fakePageRepo) FindByID(id string) (*content.PageNode, error) {
	return r.pages[id], nil
}

func (r *fakePageRepo) FindBySlug(slug string) (*content.PageNode, error) {
	for _, page := range r.pages {
		if page.Slug == slug {
			return page, nil
		}
	}
	return nil, nil
}

func (r *fakePageRepo) FindAll() ([]*content.PageNode, error) {
	all := make([]*content.PageNode, 0, len(r.pages))
	for _, page := range r.pages {
		all = append(all, page)
	}
	return all, nil
}

func (r *fakePageRepo) FindByIDs(ids []string) ([]*content.PageNode, error) {
	found := make([]*content.PageNode, 0, len(ids))
	for _, id := range ids {
		if page := r.pages[id]; page != nil {
			found = append(found, page)
		}
	}
	return found, nil
}

func (r *fakePageRepo) Store(page *content.PageNode) error {
	r.pages[page.ID] = page
	return nil
}

func (r *fakePageRepo) Update(page *content.PageNode) error {
	r.pages[page.ID] = page
	return nil
}

func (r *fakePageRepo) Delete(id string) error {
	delete(r.pages, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[string]*content.PageTemplateNode
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]*content.PageTemplateNode)}
}

func (r *fakeTemplateRepo) FindByID(id string) (*content.PageTemplateNode, error) {
	return r.templates[id], nil
}

func (r *fakeTemplateRepo) FindBySlug(slug string) (*content.PageTemplateNode, error) {
	for _, template := range r.templates {
		if template.Slug == slug {
			return template, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindAll() ([]*content.PageTemplateNode, error) {
	all := make([]*content.PageTemplateNode, 0, len(r.templates))
	for _, template := range r.templates {
		all = append(all, template)
	}
	return all, nil
}

func (r *fakeTemplateRepo) FindByIDs(ids []string) ([]*content.PageTemplateNode, error) {
	found := make([]*content.PageTemplateNode, 0, len(ids))
	for _, id := range ids {
		if template := r.templates[id]; template != nil {
			found = append(found, template)
		}
	}
	return found, nil
}

func (r *fakeTemplateRepo) Store(template *content.PageTemplateNode) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) Update(template *content.PageTemplateNode) error {
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) Delete(id string) error {
	delete(r.templates, id)
	return nil
}

type fakeBlockTemplateRepo struct {
	blocks map[string]*content.BlockTemplateNode
}

func newFakeBlockTemplateRepo() *fakeBlockTemplateRepo {
	return &fakeBlockTemplateRepo{blocks: make(map[string]*content.BlockTemplateNode)}
}

func (r *fakeBlockTemplateRepo) FindByID(id string) (*content.BlockTemplateNode, error) {
	return r.blocks[id], nil
}

func (r *fakeBlockTemplateRepo) FindAll() ([]*content.BlockTemplateNode, error) {
	all := make([]*content.BlockTemplateNode, 0, len(r.blocks))
	for _, block := range r.blocks {
		all = append(all, block)
	}
	return all, nil
}

func (r *fakeBlockTemplateRepo) FindByIDs(ids []string) ([]*content.BlockTemplateNode, error) {
	found := make([]*content.BlockTemplateNode, 0, len(ids))
	for _, id := range ids {
		if block := r.blocks[id]; block != nil {
			found = append(found, block)
		}
	}
	return found, nil
}

func (r *fakeBlockTemplateRepo) Store(block *content.BlockTemplateNode) error {
	r.blocks[block.ID] = block
	return nil
}

func (r *fakeBlockTemplateRepo) Update(block *content.BlockTemplateNode) error {
	r.blocks[block.ID] = block
	return nil
}

func (r *fakeBlockTemplateRepo) Delete(id string) error {
	delete(r.blocks, id)
	return nil
}
