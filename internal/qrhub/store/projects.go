package store

import (
	"context"
	"slices"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
)

type Projects interface {
	Get(ctx context.Context, id string) (domain.Project, error)

	// ListByOwner returns owner's projects, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)

	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Replace(ctx context.Context, p domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectsRepo struct{ c Container }

func (r *projectsRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	it, err := r.c.Read(ctx, id, id)
	if err != nil {
		return domain.Project{}, err
	}
	return toProject(it)
}

func (r *projectsRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	items, err := r.c.Query(ctx, Query{Conditions: []Condition{Eq("userId", ownerID)}})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(items))
	for _, it := range items {
		p, err := toProject(it)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	// Sorted here rather than in the query: cross partition ORDER BY is not
	// available on every driver.
	slices.SortStableFunc(out, func(a, b domain.Project) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *projectsRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if p.Kind == "" {
		p.Kind = domain.KindProject
	}
	p.ApplyDefaults()

	it, err := encode(p.ID, p)
	if err != nil {
		return domain.Project{}, err
	}
	created, err := r.c.Create(ctx, it)
	if err != nil {
		return domain.Project{}, err
	}
	p.ETag = created.ETag
	return p, nil
}

func (r *projectsRepo) Replace(ctx context.Context, p domain.Project) (domain.Project, error) {
	it, err := encode(p.ID, p)
	if err != nil {
		return domain.Project{}, err
	}
	written, err := r.c.Replace(ctx, it, p.ETag)
	if err != nil {
		return domain.Project{}, err
	}
	p.ETag = written.ETag
	return p, nil
}

func (r *projectsRepo) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, id, id)
}

func toProject(it Item) (domain.Project, error) {
	var p domain.Project
	if err := decode(it, &p); err != nil {
		return domain.Project{}, err
	}
	p.ApplyDefaults()
	p.ETag = it.ETag
	return p, nil
}
