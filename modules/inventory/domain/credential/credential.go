package credential

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Credential holds access data for a device. ComponentCode is the natural
// key the credentials importer synthesizes ("{sheet}-{identifier}"); the
// optional ComponentID link is resolved lazily, not enforced.
type Credential struct {
	ID            int64   `json:"id"`
	ComponentID   *int64  `json:"component_id,omitempty"`
	ComponentCode *string `json:"component_code,omitempty"`
	Username      *string `json:"username,omitempty"`
	Password      *string `json:"password,omitempty"`
	IPAddress     *string `json:"ip_address,omitempty"`
	Port          *string `json:"port,omitempty"`
	AccessType    *string `json:"access_type,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	LastUpdated   *string `json:"last_updated,omitempty"`
}

type Repository interface {
	List(ctx context.Context, params repo.ListParams) ([]*Credential, error)
	GetByID(ctx context.Context, id int64) (*Credential, error)
	GetByCode(ctx context.Context, code string) (*Credential, error)
	GetByComponentIDs(ctx context.Context, componentIDs []int64) ([]*Credential, error)
	Create(ctx context.Context, c *Credential) (*Credential, error)
	Update(ctx context.Context, c *Credential) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Credential, error)
}
