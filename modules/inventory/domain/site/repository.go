package site

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

type RegionRepository interface {
	List(ctx context.Context, params repo.ListParams) ([]*Region, error)
	GetByID(ctx context.Context, id int64) (*Region, error)
	GetByName(ctx context.Context, name string) (*Region, error)
	Create(ctx context.Context, r *Region) (*Region, error)
	Update(ctx context.Context, r *Region) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Region, error)
}

type DistrictRepository interface {
	List(ctx context.Context, params repo.ListParams) ([]*District, error)
	GetByID(ctx context.Context, id int64) (*District, error)
	// GetByNameAndRegion scopes district uniqueness to (name, region).
	GetByNameAndRegion(ctx context.Context, name string, regionID int64) (*District, error)
	Create(ctx context.Context, d *District) (*District, error)
	Update(ctx context.Context, d *District) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*District, error)
}

type LandmarkRepository interface {
	List(ctx context.Context, params repo.ListParams) ([]*Landmark, error)
	GetByID(ctx context.Context, id int64) (*Landmark, error)
	GetByCode(ctx context.Context, code string) (*Landmark, error)
	Create(ctx context.Context, l *Landmark) (*Landmark, error)
	Update(ctx context.Context, l *Landmark) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Landmark, error)
}

type PoleRepository interface {
	List(ctx context.Context, params repo.ListParams) ([]*Pole, error)
	GetByID(ctx context.Context, id int64) (*Pole, error)
	GetByCode(ctx context.Context, code string) (*Pole, error)
	Create(ctx context.Context, p *Pole) (*Pole, error)
	Update(ctx context.Context, p *Pole) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Pole, error)
}

type JunctionBoxRepository interface {
	List(ctx context.Context, params repo.ListParams) ([]*JunctionBox, error)
	GetByID(ctx context.Context, id int64) (*JunctionBox, error)
	GetByCode(ctx context.Context, code string) (*JunctionBox, error)
	Create(ctx context.Context, jb *JunctionBox) (*JunctionBox, error)
	Update(ctx context.Context, jb *JunctionBox) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*JunctionBox, error)
}
