package services

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Thin CRUD services over the site hierarchy. Reads run on the pool the
// request context carries; writes take a transaction.

type RegionService struct {
	Repo site.RegionRepository
}

func NewRegionService(repo site.RegionRepository) *RegionService {
	return &RegionService{Repo: repo}
}

func (s *RegionService) List(ctx context.Context, params repo.ListParams) ([]*site.Region, error) {
	return s.Repo.List(ctx, params)
}

func (s *RegionService) GetByID(ctx context.Context, id int64) (*site.Region, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *RegionService) Create(ctx context.Context, v *site.Region) (*site.Region, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RegionService) Update(ctx context.Context, v *site.Region) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *RegionService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}

type DistrictService struct {
	Repo site.DistrictRepository
}

func NewDistrictService(repo site.DistrictRepository) *DistrictService {
	return &DistrictService{Repo: repo}
}

func (s *DistrictService) List(ctx context.Context, params repo.ListParams) ([]*site.District, error) {
	return s.Repo.List(ctx, params)
}

func (s *DistrictService) GetByID(ctx context.Context, id int64) (*site.District, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DistrictService) Create(ctx context.Context, v *site.District) (*site.District, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *DistrictService) Update(ctx context.Context, v *site.District) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *DistrictService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}

type LandmarkService struct {
	Repo site.LandmarkRepository
}

func NewLandmarkService(repo site.LandmarkRepository) *LandmarkService {
	return &LandmarkService{Repo: repo}
}

func (s *LandmarkService) List(ctx context.Context, params repo.ListParams) ([]*site.Landmark, error) {
	return s.Repo.List(ctx, params)
}

func (s *LandmarkService) GetByID(ctx context.Context, id int64) (*site.Landmark, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *LandmarkService) Create(ctx context.Context, v *site.Landmark) (*site.Landmark, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *LandmarkService) Update(ctx context.Context, v *site.Landmark) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *LandmarkService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}

type PoleService struct {
	Repo site.PoleRepository
}

func NewPoleService(repo site.PoleRepository) *PoleService {
	return &PoleService{Repo: repo}
}

func (s *PoleService) List(ctx context.Context, params repo.ListParams) ([]*site.Pole, error) {
	return s.Repo.List(ctx, params)
}

func (s *PoleService) GetByID(ctx context.Context, id int64) (*site.Pole, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PoleService) Create(ctx context.Context, v *site.Pole) (*site.Pole, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *PoleService) Update(ctx context.Context, v *site.Pole) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *PoleService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}

type JunctionBoxService struct {
	Repo site.JunctionBoxRepository
}

func NewJunctionBoxService(repo site.JunctionBoxRepository) *JunctionBoxService {
	return &JunctionBoxService{Repo: repo}
}

func (s *JunctionBoxService) List(ctx context.Context, params repo.ListParams) ([]*site.JunctionBox, error) {
	return s.Repo.List(ctx, params)
}

func (s *JunctionBoxService) GetByID(ctx context.Context, id int64) (*site.JunctionBox, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *JunctionBoxService) Create(ctx context.Context, v *site.JunctionBox) (*site.JunctionBox, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *JunctionBoxService) Update(ctx context.Context, v *site.JunctionBox) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *JunctionBoxService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}
