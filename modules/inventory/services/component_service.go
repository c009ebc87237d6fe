package services

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// ComponentWithCredentials is the component read model: the record plus the
// access credentials linked to it.
type ComponentWithCredentials struct {
	*component.Component
	Credentials []*credential.Credential `json:"credentials"`
}

type ComponentService struct {
	Repo        component.Repository
	Credentials credential.Repository
}

func NewComponentService(repo component.Repository, credentials credential.Repository) *ComponentService {
	return &ComponentService{Repo: repo, Credentials: credentials}
}

// List returns components with their credentials resolved in one bulk
// lookup instead of per component.
func (s *ComponentService) List(ctx context.Context, params repo.ListParams) ([]*ComponentWithCredentials, error) {
	comps, err := s.Repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(comps))
	for _, c := range comps {
		ids = append(ids, c.ID)
	}
	creds, err := s.Credentials.GetByComponentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byComponent := map[int64][]*credential.Credential{}
	for _, cr := range creds {
		if cr.ComponentID == nil {
			continue
		}
		byComponent[*cr.ComponentID] = append(byComponent[*cr.ComponentID], cr)
	}

	out := make([]*ComponentWithCredentials, 0, len(comps))
	for _, c := range comps {
		linked := byComponent[c.ID]
		if linked == nil {
			linked = []*credential.Credential{}
		}
		out = append(out, &ComponentWithCredentials{Component: c, Credentials: linked})
	}
	return out, nil
}

func (s *ComponentService) GetByID(ctx context.Context, id int64) (*ComponentWithCredentials, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	creds, err := s.Credentials.GetByComponentIDs(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	if creds == nil {
		creds = []*credential.Credential{}
	}
	return &ComponentWithCredentials{Component: c, Credentials: creds}, nil
}

func (s *ComponentService) Create(ctx context.Context, v *component.Component) (*component.Component, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ComponentService) Update(ctx context.Context, v *component.Component) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *ComponentService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}

type CredentialService struct {
	Repo credential.Repository
}

func NewCredentialService(repo credential.Repository) *CredentialService {
	return &CredentialService{Repo: repo}
}

func (s *CredentialService) List(ctx context.Context, params repo.ListParams) ([]*credential.Credential, error) {
	return s.Repo.List(ctx, params)
}

func (s *CredentialService) GetByID(ctx context.Context, id int64) (*credential.Credential, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CredentialService) Create(ctx context.Context, v *credential.Credential) (*credential.Credential, error) {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.Repo.Create(txCtx, v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *CredentialService) Update(ctx context.Context, v *credential.Credential) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Update(txCtx, v)
	})
}

func (s *CredentialService) Delete(ctx context.Context, id int64) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.Repo.Delete(txCtx, id)
	})
}
