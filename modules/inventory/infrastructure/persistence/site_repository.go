package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Repositories here run against whatever transaction the context carries;
// the import orchestrator wraps each source in one, the HTTP layer uses the
// pool directly.

type RegionRepository struct{}

func NewRegionRepository() *RegionRepository {
	return &RegionRepository{}
}

func (r *RegionRepository) List(ctx context.Context, params repo.ListParams) ([]*site.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, name FROM regions ORDER BY name LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Region
	for rows.Next() {
		var v site.Region
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *RegionRepository) GetByID(ctx context.Context, id int64) (*site.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v site.Region
	if err := tx.QueryRow(ctx, `SELECT id, name FROM regions WHERE id=$1`, id).Scan(&v.ID, &v.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *RegionRepository) GetByName(ctx context.Context, name string) (*site.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v site.Region
	if err := tx.QueryRow(ctx, `SELECT id, name FROM regions WHERE name=$1`, name).Scan(&v.ID, &v.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *RegionRepository) Create(ctx context.Context, v *site.Region) (*site.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO regions (name) VALUES ($1) RETURNING id
	`, v.Name).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *RegionRepository) Update(ctx context.Context, v *site.Region) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE regions SET name=$2 WHERE id=$1`, v.ID, v.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RegionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM regions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RegionRepository) Search(ctx context.Context, q string, limit int) ([]*site.Region, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, name FROM regions WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Region
	for rows.Next() {
		var v site.Region
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

type DistrictRepository struct{}

func NewDistrictRepository() *DistrictRepository {
	return &DistrictRepository{}
}

func (r *DistrictRepository) List(ctx context.Context, params repo.ListParams) ([]*site.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, name, region_id FROM districts ORDER BY name LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDistricts(rows)
}

func (r *DistrictRepository) GetByID(ctx context.Context, id int64) (*site.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v site.District
	if err := tx.QueryRow(ctx, `
	SELECT id, name, region_id FROM districts WHERE id=$1
	`, id).Scan(&v.ID, &v.Name, &v.RegionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *DistrictRepository) GetByNameAndRegion(ctx context.Context, name string, regionID int64) (*site.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var v site.District
	if err := tx.QueryRow(ctx, `
	SELECT id, name, region_id FROM districts WHERE name=$1 AND region_id=$2
	`, name, regionID).Scan(&v.ID, &v.Name, &v.RegionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *DistrictRepository) Create(ctx context.Context, v *site.District) (*site.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO districts (name, region_id) VALUES ($1, $2) RETURNING id
	`, v.Name, v.RegionID).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *DistrictRepository) Update(ctx context.Context, v *site.District) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
	UPDATE districts SET name=$2, region_id=$3 WHERE id=$1
	`, v.ID, v.Name, v.RegionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DistrictRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM districts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DistrictRepository) Search(ctx context.Context, q string, limit int) ([]*site.District, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT id, name, region_id FROM districts WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDistricts(rows)
}

func scanDistricts(rows pgx.Rows) ([]*site.District, error) {
	var out []*site.District
	for rows.Next() {
		var v site.District
		if err := rows.Scan(&v.ID, &v.Name, &v.RegionID); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

type LandmarkRepository struct{}

func NewLandmarkRepository() *LandmarkRepository {
	return &LandmarkRepository{}
}

const landmarkColumns = `id, code, name, lat, lng, district_id, region_id`

func scanLandmark(row pgx.Row) (*site.Landmark, error) {
	var v site.Landmark
	if err := row.Scan(&v.ID, &v.Code, &v.Name, &v.Lat, &v.Lng, &v.DistrictID, &v.RegionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *LandmarkRepository) List(ctx context.Context, params repo.ListParams) ([]*site.Landmark, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+landmarkColumns+` FROM landmarks ORDER BY code LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Landmark
	for rows.Next() {
		v, err := scanLandmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *LandmarkRepository) GetByID(ctx context.Context, id int64) (*site.Landmark, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanLandmark(tx.QueryRow(ctx, `SELECT `+landmarkColumns+` FROM landmarks WHERE id=$1`, id))
}

func (r *LandmarkRepository) GetByCode(ctx context.Context, code string) (*site.Landmark, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanLandmark(tx.QueryRow(ctx, `SELECT `+landmarkColumns+` FROM landmarks WHERE code=$1`, code))
}

func (r *LandmarkRepository) Create(ctx context.Context, v *site.Landmark) (*site.Landmark, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO landmarks (code, name, lat, lng, district_id, region_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`, v.Code, v.Name, v.Lat, v.Lng, v.DistrictID, v.RegionID).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *LandmarkRepository) Update(ctx context.Context, v *site.Landmark) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
	UPDATE landmarks SET code=$2, name=$3, lat=$4, lng=$5, district_id=$6, region_id=$7
	WHERE id=$1
	`, v.ID, v.Code, v.Name, v.Lat, v.Lng, v.DistrictID, v.RegionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LandmarkRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM landmarks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LandmarkRepository) Search(ctx context.Context, q string, limit int) ([]*site.Landmark, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+landmarkColumns+` FROM landmarks
	WHERE code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
	ORDER BY code LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Landmark
	for rows.Next() {
		v, err := scanLandmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type PoleRepository struct{}

func NewPoleRepository() *PoleRepository {
	return &PoleRepository{}
}

const poleColumns = `id, code, location_name, lat, lng, landmark_id, district_id, region_id`

func scanPole(row pgx.Row) (*site.Pole, error) {
	var v site.Pole
	if err := row.Scan(&v.ID, &v.Code, &v.LocationName, &v.Lat, &v.Lng, &v.LandmarkID, &v.DistrictID, &v.RegionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PoleRepository) List(ctx context.Context, params repo.ListParams) ([]*site.Pole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+poleColumns+` FROM poles ORDER BY code LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Pole
	for rows.Next() {
		v, err := scanPole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PoleRepository) GetByID(ctx context.Context, id int64) (*site.Pole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanPole(tx.QueryRow(ctx, `SELECT `+poleColumns+` FROM poles WHERE id=$1`, id))
}

func (r *PoleRepository) GetByCode(ctx context.Context, code string) (*site.Pole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanPole(tx.QueryRow(ctx, `SELECT `+poleColumns+` FROM poles WHERE code=$1`, code))
}

func (r *PoleRepository) Create(ctx context.Context, v *site.Pole) (*site.Pole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO poles (code, location_name, lat, lng, landmark_id, district_id, region_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`, v.Code, v.LocationName, v.Lat, v.Lng, v.LandmarkID, v.DistrictID, v.RegionID).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *PoleRepository) Update(ctx context.Context, v *site.Pole) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
	UPDATE poles SET code=$2, location_name=$3, lat=$4, lng=$5, landmark_id=$6, district_id=$7, region_id=$8
	WHERE id=$1
	`, v.ID, v.Code, v.LocationName, v.Lat, v.Lng, v.LandmarkID, v.DistrictID, v.RegionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PoleRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM poles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PoleRepository) Search(ctx context.Context, q string, limit int) ([]*site.Pole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+poleColumns+` FROM poles
	WHERE code ILIKE '%' || $1 || '%' OR location_name ILIKE '%' || $1 || '%'
	ORDER BY code LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.Pole
	for rows.Next() {
		v, err := scanPole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type JunctionBoxRepository struct{}

func NewJunctionBoxRepository() *JunctionBoxRepository {
	return &JunctionBoxRepository{}
}

const junctionBoxColumns = `id, code, lat, lng, pole_id, landmark_id, district_id, region_id`

func scanJunctionBox(row pgx.Row) (*site.JunctionBox, error) {
	var v site.JunctionBox
	if err := row.Scan(&v.ID, &v.Code, &v.Lat, &v.Lng, &v.PoleID, &v.LandmarkID, &v.DistrictID, &v.RegionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *JunctionBoxRepository) List(ctx context.Context, params repo.ListParams) ([]*site.JunctionBox, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+junctionBoxColumns+` FROM junction_boxes ORDER BY code LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.JunctionBox
	for rows.Next() {
		v, err := scanJunctionBox(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *JunctionBoxRepository) GetByID(ctx context.Context, id int64) (*site.JunctionBox, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanJunctionBox(tx.QueryRow(ctx, `SELECT `+junctionBoxColumns+` FROM junction_boxes WHERE id=$1`, id))
}

func (r *JunctionBoxRepository) GetByCode(ctx context.Context, code string) (*site.JunctionBox, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanJunctionBox(tx.QueryRow(ctx, `SELECT `+junctionBoxColumns+` FROM junction_boxes WHERE code=$1`, code))
}

func (r *JunctionBoxRepository) Create(ctx context.Context, v *site.JunctionBox) (*site.JunctionBox, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO junction_boxes (code, lat, lng, pole_id, landmark_id, district_id, region_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`, v.Code, v.Lat, v.Lng, v.PoleID, v.LandmarkID, v.DistrictID, v.RegionID).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *JunctionBoxRepository) Update(ctx context.Context, v *site.JunctionBox) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
	UPDATE junction_boxes SET code=$2, lat=$3, lng=$4, pole_id=$5, landmark_id=$6, district_id=$7, region_id=$8
	WHERE id=$1
	`, v.ID, v.Code, v.Lat, v.Lng, v.PoleID, v.LandmarkID, v.DistrictID, v.RegionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *JunctionBoxRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM junction_boxes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *JunctionBoxRepository) Search(ctx context.Context, q string, limit int) ([]*site.JunctionBox, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+junctionBoxColumns+` FROM junction_boxes
	WHERE code ILIKE '%' || $1 || '%'
	ORDER BY code LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*site.JunctionBox
	for rows.Next() {
		v, err := scanJunctionBox(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
