package reconcile

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Reconcilers consume only the narrow store surfaces below; the pgx
// repositories satisfy them as-is and tests swap in in-memory fakes.

type RegionStore interface {
	GetByName(ctx context.Context, name string) (*site.Region, error)
	Create(ctx context.Context, r *site.Region) (*site.Region, error)
}

type DistrictStore interface {
	GetByNameAndRegion(ctx context.Context, name string, regionID int64) (*site.District, error)
	Create(ctx context.Context, d *site.District) (*site.District, error)
}

type LandmarkStore interface {
	GetByCode(ctx context.Context, code string) (*site.Landmark, error)
	Create(ctx context.Context, l *site.Landmark) (*site.Landmark, error)
	Update(ctx context.Context, l *site.Landmark) error
}

type PoleStore interface {
	GetByCode(ctx context.Context, code string) (*site.Pole, error)
	Create(ctx context.Context, p *site.Pole) (*site.Pole, error)
	Update(ctx context.Context, p *site.Pole) error
}

type JunctionBoxStore interface {
	GetByCode(ctx context.Context, code string) (*site.JunctionBox, error)
	Create(ctx context.Context, jb *site.JunctionBox) (*site.JunctionBox, error)
	Update(ctx context.Context, jb *site.JunctionBox) error
}

type ComponentStore interface {
	GetByCode(ctx context.Context, code string) (*component.Component, error)
	Create(ctx context.Context, c *component.Component) (*component.Component, error)
	Update(ctx context.Context, c *component.Component) error
}

type CredentialStore interface {
	GetByCode(ctx context.Context, code string) (*credential.Credential, error)
	Create(ctx context.Context, c *credential.Credential) (*credential.Credential, error)
	Update(ctx context.Context, c *credential.Credential) error
}

// Stores bundles everything one reconciliation pass touches. All of it is
// expected to share one transaction via the context.
type Stores struct {
	Regions       RegionStore
	Districts     DistrictStore
	Landmarks     LandmarkStore
	Poles         PoleStore
	JunctionBoxes JunctionBoxStore
	Components    ComponentStore
	Credentials   CredentialStore
}

// codeStore is the lookup-by-unique-code contract shared by every
// code-keyed entity.
type codeStore[T any] interface {
	GetByCode(ctx context.Context, code string) (T, error)
	Create(ctx context.Context, v T) (T, error)
}

// getOrCreateByCode looks an entity up strictly by its unique code, ignoring
// any other filter, so stale parent references never cause duplicate-key
// creation attempts. The fresh record must carry every required reference.
func getOrCreateByCode[T any](ctx context.Context, store codeStore[T], code string, fresh func() T) (T, error) {
	v, err := store.GetByCode(ctx, code)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		var zero T
		return zero, err
	}
	return store.Create(ctx, fresh())
}

func (s *Stores) getOrCreateRegion(ctx context.Context, name string) (*site.Region, error) {
	r, err := s.Regions.GetByName(ctx, name)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.Regions.Create(ctx, &site.Region{Name: name})
}

func (s *Stores) getOrCreateDistrict(ctx context.Context, name string, regionID int64) (*site.District, error) {
	d, err := s.Districts.GetByNameAndRegion(ctx, name, regionID)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.Districts.Create(ctx, &site.District{Name: name, RegionID: regionID})
}
