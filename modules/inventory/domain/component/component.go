package component

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Component is one inventoried network element. Everything beyond the code
// and type is descriptive and arrives sparsely from spreadsheets, so those
// fields are pointers: an absent column leaves the stored value untouched.
type Component struct {
	ID            int64  `json:"id"`
	ComponentCode string `json:"component_code"`
	ComponentType string `json:"component_type"`

	ConnectedToCode *string `json:"connected_to_code,omitempty"`
	Model           *string `json:"model,omitempty"`
	Serial          *string `json:"serial,omitempty"`
	Firmware        *string `json:"firmware,omitempty"`
	OS              *string `json:"os,omitempty"`
	Licenses        *string `json:"licenses,omitempty"`

	PoleID     *int64 `json:"pole_id,omitempty"`
	JBID       *int64 `json:"jb_id,omitempty"`
	LandmarkID *int64 `json:"landmark_id,omitempty"`
	DistrictID *int64 `json:"district_id,omitempty"`
	RegionID   *int64 `json:"region_id,omitempty"`

	ProjectPhase *float64 `json:"project_phase,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	LandmarkName *string  `json:"landmark_name,omitempty"`
	FRSCamera    *string  `json:"frs_camera,omitempty"`
	PowerReq     *string  `json:"power_req,omitempty"`

	LocalIfName  *string `json:"local_if_name,omitempty"`
	LocalIfIP    *string `json:"local_if_ip,omitempty"`
	RemoteIfName *string `json:"remote_if_name,omitempty"`
	RemoteIfIP   *string `json:"remote_if_ip,omitempty"`

	CableID           *string `json:"cable_id,omitempty"`
	PhysicalLinkType  *string `json:"physical_link_type,omitempty"`
	LogicalLinkType   *string `json:"logical_link_type,omitempty"`
	SegmentType       *string `json:"segment_type,omitempty"`
	SegmentSwitches   *string `json:"segment_switches,omitempty"`
	SegmentJunctions  *string `json:"segment_junctions,omitempty"`
	SegmentInstanceNo *string `json:"segment_instance_no,omitempty"`
	FiberCoreUsage    *string `json:"fiber_core_usage,omitempty"`

	ProposedVLAN   *string `json:"proposed_vlan,omitempty"`
	ProposedSubnet *string `json:"proposed_subnet,omitempty"`
	IPAssignment   *string `json:"ip_assignment,omitempty"`
	VideoPriority  *string `json:"video_priority,omitempty"`
	SecurityZone   *string `json:"security_zone,omitempty"`

	LastConfigChange    *string `json:"last_config_change,omitempty"`
	LastConfigBackup    *string `json:"last_config_backup,omitempty"`
	MaintenanceSchedule *string `json:"maintenance_schedule,omitempty"`
	LastMaintenance     *string `json:"last_maintenance,omitempty"`
	MonitoringTool      *string `json:"monitoring_tool,omitempty"`

	NetworkProvider *string `json:"network_provider,omitempty"`
	StaticRouterIP  *string `json:"static_router_ip,omitempty"`
	LandlineNumber  *string `json:"landline_number,omitempty"`
	TerminationType *string `json:"termination_type,omitempty"`

	Router1  *string `json:"router1,omitempty"`
	Router2  *string `json:"router2,omitempty"`
	HTTPPort *string `json:"http_port,omitempty"`
	RTSPPort *string `json:"rtsp_port,omitempty"`
}

type Repository interface {
	List(ctx context.Context, params repo.ListParams) ([]*Component, error)
	GetByID(ctx context.Context, id int64) (*Component, error)
	GetByCode(ctx context.Context, code string) (*Component, error)
	Create(ctx context.Context, c *Component) (*Component, error)
	Update(ctx context.Context, c *Component) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Component, error)
}
