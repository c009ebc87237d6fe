package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

type CredentialRepository struct{}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{}
}

const credentialColumns = `id, component_id, component_code, username, password, ip_address, port, access_type, notes, last_updated`

func scanCredential(row pgx.Row) (*credential.Credential, error) {
	var v credential.Credential
	err := row.Scan(&v.ID, &v.ComponentID, &v.ComponentCode, &v.Username, &v.Password, &v.IPAddress, &v.Port, &v.AccessType, &v.Notes, &v.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *CredentialRepository) List(ctx context.Context, params repo.ListParams) ([]*credential.Credential, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+credentialColumns+` FROM credentials ORDER BY id LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCredentials(rows)
}

func (r *CredentialRepository) GetByID(ctx context.Context, id int64) (*credential.Credential, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanCredential(tx.QueryRow(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id=$1`, id))
}

func (r *CredentialRepository) GetByCode(ctx context.Context, code string) (*credential.Credential, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanCredential(tx.QueryRow(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE component_code=$1`, code))
}

func (r *CredentialRepository) GetByComponentIDs(ctx context.Context, componentIDs []int64) ([]*credential.Credential, error) {
	if len(componentIDs) == 0 {
		return nil, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+credentialColumns+` FROM credentials WHERE component_id = ANY($1) ORDER BY id
	`, componentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCredentials(rows)
}

func (r *CredentialRepository) Create(ctx context.Context, v *credential.Credential) (*credential.Credential, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO credentials (component_id, component_code, username, password, ip_address, port, access_type, notes, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
	`, v.ComponentID, v.ComponentCode, v.Username, v.Password, v.IPAddress, v.Port, v.AccessType, v.Notes, v.LastUpdated).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *CredentialRepository) Update(ctx context.Context, v *credential.Credential) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
	UPDATE credentials SET component_id=$2, component_code=$3, username=$4, password=$5, ip_address=$6, port=$7, access_type=$8, notes=$9, last_updated=$10
	WHERE id=$1
	`, v.ID, v.ComponentID, v.ComponentCode, v.Username, v.Password, v.IPAddress, v.Port, v.AccessType, v.Notes, v.LastUpdated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM credentials WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) Search(ctx context.Context, q string, limit int) ([]*credential.Credential, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+credentialColumns+`
	FROM credentials
	WHERE component_code ILIKE '%' || $1 || '%'
	   OR username ILIKE '%' || $1 || '%'
	   OR ip_address ILIKE '%' || $1 || '%'
	   OR notes ILIKE '%' || $1 || '%'
	ORDER BY id LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCredentials(rows)
}

func collectCredentials(rows pgx.Rows) ([]*credential.Credential, error) {
	var out []*credential.Credential
	for rows.Next() {
		v, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
