package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/pkg/composables"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

type ComponentRepository struct{}

func NewComponentRepository() *ComponentRepository {
	return &ComponentRepository{}
}

const componentColumns = `
	id, component_code, component_type, connected_to_code, model, serial, firmware, os, licenses,
	pole_id, jb_id, landmark_id, district_id, region_id,
	project_phase, lat, lng, landmark_name, frs_camera, power_req,
	local_if_name, local_if_ip, remote_if_name, remote_if_ip,
	cable_id, physical_link_type, logical_link_type, segment_type,
	segment_switches, segment_junctions, segment_instance_no, fiber_core_usage,
	proposed_vlan, proposed_subnet, ip_assignment, video_priority, security_zone,
	last_config_change, last_config_backup, maintenance_schedule, last_maintenance, monitoring_tool,
	network_provider, static_router_ip, landline_number, termination_type,
	router1, router2, http_port, rtsp_port`

func scanComponent(row pgx.Row) (*component.Component, error) {
	var v component.Component
	err := row.Scan(
		&v.ID, &v.ComponentCode, &v.ComponentType, &v.ConnectedToCode, &v.Model, &v.Serial, &v.Firmware, &v.OS, &v.Licenses,
		&v.PoleID, &v.JBID, &v.LandmarkID, &v.DistrictID, &v.RegionID,
		&v.ProjectPhase, &v.Lat, &v.Lng, &v.LandmarkName, &v.FRSCamera, &v.PowerReq,
		&v.LocalIfName, &v.LocalIfIP, &v.RemoteIfName, &v.RemoteIfIP,
		&v.CableID, &v.PhysicalLinkType, &v.LogicalLinkType, &v.SegmentType,
		&v.SegmentSwitches, &v.SegmentJunctions, &v.SegmentInstanceNo, &v.FiberCoreUsage,
		&v.ProposedVLAN, &v.ProposedSubnet, &v.IPAssignment, &v.VideoPriority, &v.SecurityZone,
		&v.LastConfigChange, &v.LastConfigBackup, &v.MaintenanceSchedule, &v.LastMaintenance, &v.MonitoringTool,
		&v.NetworkProvider, &v.StaticRouterIP, &v.LandlineNumber, &v.TerminationType,
		&v.Router1, &v.Router2, &v.HTTPPort, &v.RTSPPort,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func componentArgs(v *component.Component) []any {
	return []any{
		v.ComponentCode, v.ComponentType, v.ConnectedToCode, v.Model, v.Serial, v.Firmware, v.OS, v.Licenses,
		v.PoleID, v.JBID, v.LandmarkID, v.DistrictID, v.RegionID,
		v.ProjectPhase, v.Lat, v.Lng, v.LandmarkName, v.FRSCamera, v.PowerReq,
		v.LocalIfName, v.LocalIfIP, v.RemoteIfName, v.RemoteIfIP,
		v.CableID, v.PhysicalLinkType, v.LogicalLinkType, v.SegmentType,
		v.SegmentSwitches, v.SegmentJunctions, v.SegmentInstanceNo, v.FiberCoreUsage,
		v.ProposedVLAN, v.ProposedSubnet, v.IPAssignment, v.VideoPriority, v.SecurityZone,
		v.LastConfigChange, v.LastConfigBackup, v.MaintenanceSchedule, v.LastMaintenance, v.MonitoringTool,
		v.NetworkProvider, v.StaticRouterIP, v.LandlineNumber, v.TerminationType,
		v.Router1, v.Router2, v.HTTPPort, v.RTSPPort,
	}
}

func (r *ComponentRepository) List(ctx context.Context, params repo.ListParams) ([]*component.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+componentColumns+`
	FROM components ORDER BY component_code LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComponents(rows)
}

func (r *ComponentRepository) GetByID(ctx context.Context, id int64) (*component.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanComponent(tx.QueryRow(ctx, `SELECT `+componentColumns+` FROM components WHERE id=$1`, id))
}

func (r *ComponentRepository) GetByCode(ctx context.Context, code string) (*component.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanComponent(tx.QueryRow(ctx, `SELECT `+componentColumns+` FROM components WHERE component_code=$1`, code))
}

func (r *ComponentRepository) Create(ctx context.Context, v *component.Component) (*component.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, `
	INSERT INTO components (
		component_code, component_type, connected_to_code, model, serial, firmware, os, licenses,
		pole_id, jb_id, landmark_id, district_id, region_id,
		project_phase, lat, lng, landmark_name, frs_camera, power_req,
		local_if_name, local_if_ip, remote_if_name, remote_if_ip,
		cable_id, physical_link_type, logical_link_type, segment_type,
		segment_switches, segment_junctions, segment_instance_no, fiber_core_usage,
		proposed_vlan, proposed_subnet, ip_assignment, video_priority, security_zone,
		last_config_change, last_config_backup, maintenance_schedule, last_maintenance, monitoring_tool,
		network_provider, static_router_ip, landline_number, termination_type,
		router1, router2, http_port, rtsp_port
	)
	VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13,
		$14, $15, $16, $17, $18, $19,
		$20, $21, $22, $23,
		$24, $25, $26, $27,
		$28, $29, $30, $31,
		$32, $33, $34, $35, $36,
		$37, $38, $39, $40, $41,
		$42, $43, $44, $45,
		$46, $47, $48, $49
	)
	RETURNING id
	`, componentArgs(v)...).Scan(&v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *ComponentRepository) Update(ctx context.Context, v *component.Component) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	args := append([]any{v.ID}, componentArgs(v)...)
	tag, err := tx.Exec(ctx, `
	UPDATE components SET
		component_code=$2, component_type=$3, connected_to_code=$4, model=$5, serial=$6, firmware=$7, os=$8, licenses=$9,
		pole_id=$10, jb_id=$11, landmark_id=$12, district_id=$13, region_id=$14,
		project_phase=$15, lat=$16, lng=$17, landmark_name=$18, frs_camera=$19, power_req=$20,
		local_if_name=$21, local_if_ip=$22, remote_if_name=$23, remote_if_ip=$24,
		cable_id=$25, physical_link_type=$26, logical_link_type=$27, segment_type=$28,
		segment_switches=$29, segment_junctions=$30, segment_instance_no=$31, fiber_core_usage=$32,
		proposed_vlan=$33, proposed_subnet=$34, ip_assignment=$35, video_priority=$36, security_zone=$37,
		last_config_change=$38, last_config_backup=$39, maintenance_schedule=$40, last_maintenance=$41, monitoring_tool=$42,
		network_provider=$43, static_router_ip=$44, landline_number=$45, termination_type=$46,
		router1=$47, router2=$48, http_port=$49, rtsp_port=$50
	WHERE id=$1
	`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ComponentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM components WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ComponentRepository) Search(ctx context.Context, q string, limit int) ([]*component.Component, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
	SELECT `+componentColumns+`
	FROM components
	WHERE component_code ILIKE '%' || $1 || '%'
	   OR component_type ILIKE '%' || $1 || '%'
	   OR model ILIKE '%' || $1 || '%'
	   OR serial ILIKE '%' || $1 || '%'
	   OR landmark_name ILIKE '%' || $1 || '%'
	   OR local_if_ip ILIKE '%' || $1 || '%'
	   OR remote_if_ip ILIKE '%' || $1 || '%'
	ORDER BY component_code LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComponents(rows)
}

func collectComponents(rows pgx.Rows) ([]*component.Component, error) {
	var out []*component.Component
	for rows.Next() {
		v, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
