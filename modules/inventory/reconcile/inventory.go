package reconcile

import (
	"context"
	"errors"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
	"github.com/fieldgrid-io/fieldgrid/pkg/mapping"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Required columns of the component inventory ("Enum-1") layout; a sheet
// without a row carrying all four has no usable header.
var inventoryRequiredColumns = []string{"Component ID", "Component Type", "Region", "District"}

// ComponentInventory reconciles the component inventory layout into the
// hierarchy. Rows lacking required fields, or naming a pole/junction box
// whose parent cannot be resolved, are abandoned whole: counted as skipped,
// with no component record either.
func ComponentInventory(ctx context.Context, s *Stores, sheet *excel.Sheet) (*Result, error) {
	header, dataStart, err := findHeaderByColumns(sheet.Rows, inventoryRequiredColumns)
	if err != nil {
		return nil, err
	}

	res := &Result{Message: "Import finished"}
	for _, row := range sheet.Rows[dataStart:] {
		col := func(name string) any { return header.value(row, name) }

		componentCode := col("Component ID")
		componentType := col("Component Type")
		regionName := col("Region")
		districtName := col("District")
		landmarkCode := col("Landmark ID")
		poleCode := col("Pole Location")
		jbCode := col("JB ID")

		if !present(componentCode) || !present(componentType) || !present(regionName) || !present(districtName) {
			res.RowsSkipped++
			continue
		}

		region, err := s.getOrCreateRegion(ctx, mustString(regionName))
		if err != nil {
			return nil, err
		}
		district, err := s.getOrCreateDistrict(ctx, mustString(districtName), region.ID)
		if err != nil {
			return nil, err
		}

		var landmark *site.Landmark
		if present(landmarkCode) {
			landmark, err = getOrCreateByCode(ctx, s.Landmarks, mustString(landmarkCode), func() *site.Landmark {
				return &site.Landmark{
					Code:       mustString(landmarkCode),
					DistrictID: district.ID,
					RegionID:   region.ID,
				}
			})
			if err != nil {
				return nil, err
			}
			landmark.DistrictID = district.ID
			landmark.RegionID = region.ID
			if err := s.Landmarks.Update(ctx, landmark); err != nil {
				return nil, err
			}
		}

		// A pole cannot hang in the air: without a landmark the row ends here.
		if present(poleCode) && landmark == nil {
			res.RowsSkipped++
			continue
		}

		var pole *site.Pole
		if present(poleCode) && landmark != nil {
			pole, err = getOrCreateByCode(ctx, s.Poles, mustString(poleCode), func() *site.Pole {
				return &site.Pole{
					Code:       mustString(poleCode),
					LandmarkID: landmark.ID,
					DistrictID: district.ID,
					RegionID:   region.ID,
				}
			})
			if err != nil {
				return nil, err
			}
			pole.LandmarkID = landmark.ID
			pole.DistrictID = district.ID
			pole.RegionID = region.ID
			if err := s.Poles.Update(ctx, pole); err != nil {
				return nil, err
			}
		}

		if present(jbCode) && pole == nil {
			res.RowsSkipped++
			continue
		}

		var jb *site.JunctionBox
		if present(jbCode) && pole != nil {
			jb, err = getOrCreateByCode(ctx, s.JunctionBoxes, mustString(jbCode), func() *site.JunctionBox {
				return &site.JunctionBox{
					Code:       mustString(jbCode),
					PoleID:     pole.ID,
					LandmarkID: landmark.ID,
					DistrictID: district.ID,
					RegionID:   region.ID,
				}
			})
			if err != nil {
				return nil, err
			}
			jb.PoleID = pole.ID
			jb.LandmarkID = landmark.ID
			jb.DistrictID = district.ID
			jb.RegionID = region.ID
			if err := s.JunctionBoxes.Update(ctx, jb); err != nil {
				return nil, err
			}
		}

		payload := &component.Component{
			ComponentCode: mustString(componentCode),
			ComponentType: mustString(componentType),

			ConnectedToCode: asString(col("Connected To (Component ID)")),
			Model:           asString(col("Model/ Specific Device")),
			Serial:          asString(col("Manufacturer Serial Number")),
			Firmware:        asString(col("Firmware/ Software Version")),
			OS:              asString(col("Operating System (if applicable)")),
			Licenses:        asString(col("Software Licenses (if applicable)")),

			DistrictID: &district.ID,
			RegionID:   &region.ID,

			ProjectPhase: asFloat(col("Project Phase")),
			Lat:          asFloat(col("Latitude")),
			Lng:          asFloat(col("Longitude")),
			LandmarkName: asString(col("Landmark")),
			FRSCamera:    asString(col("FRS Camera")),
			PowerReq:     asString(col("Power Source/ Requirements")),

			LocalIfName:  asString(col("Local Interface Name/Port")),
			LocalIfIP:    asString(col("Local Interface IP Address")),
			RemoteIfName: asString(col("Remote Interface Name/Port")),
			RemoteIfIP:   asString(col("Remote Interface IP Address")),

			CableID:           asString(col("Cable ID")),
			PhysicalLinkType:  asString(col("Physical Link Type")),
			LogicalLinkType:   asString(col("Logical Link Type (Overall Network Segment)")),
			SegmentType:       asString(col("Segment Type (Connectivity Model)")),
			SegmentSwitches:   asString(col("Segment Structure - Switches")),
			SegmentJunctions:  asString(col("Segment Structure - Junctions")),
			SegmentInstanceNo: asString(col("Segment Structure - Instance Number")),
			FiberCoreUsage:    asString(col("Fiber Core Usage (if OFC)")),

			ProposedVLAN:   asString(col("Proposed VLAN ID")),
			ProposedSubnet: asString(col("Proposed Subnet (CIDR)")),
			IPAssignment:   asString(col("IP Assignment Method")),
			VideoPriority:  asString(col("Video-High-Priority (EF)")),
			SecurityZone:   asString(col("Security Zone/Firewall Zone")),

			LastConfigChange:    asString(col("Last Configuration Change Date")),
			LastConfigBackup:    asString(col("Last Configuration Backup Date")),
			MaintenanceSchedule: asString(col("Maintenance Schedule")),
			LastMaintenance:     asString(col("Last Maintenance Date")),
			MonitoringTool:      asString(col("Monitoring Status/Tool")),

			NetworkProvider: asString(col("Network Provider")),
			StaticRouterIP:  asString(col("Static IP Of router ")),
			LandlineNumber:  asString(col("Landline Number")),
			TerminationType: asString(col("Termination Type(Port Forwarding /VPN)")),

			Router1:  asString(col("Router 1")),
			Router2:  asString(col("Router 2")),
			HTTPPort: asString(col("HTTP Port ")),
			RTSPPort: asString(col("RTSP Port")),
		}
		if pole != nil {
			payload.PoleID = &pole.ID
		}
		if jb != nil {
			payload.JBID = &jb.ID
		}
		if landmark != nil {
			payload.LandmarkID = &landmark.ID
		}

		if err := upsertComponent(ctx, s.Components, payload); err != nil {
			return nil, err
		}
		res.RowsIngested++
	}
	return res, nil
}

// upsertComponent creates the component or folds the sparse payload into
// the existing record: only fields the row actually carried overwrite.
func upsertComponent(ctx context.Context, store ComponentStore, payload *component.Component) error {
	existing, err := store.GetByCode(ctx, payload.ComponentCode)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if _, createErr := store.Create(ctx, payload); createErr != nil {
			return createErr
		}
		return nil
	}

	existing.ComponentType = payload.ComponentType
	mapping.ApplyPointer(&existing.ConnectedToCode, payload.ConnectedToCode)
	mapping.ApplyPointer(&existing.Model, payload.Model)
	mapping.ApplyPointer(&existing.Serial, payload.Serial)
	mapping.ApplyPointer(&existing.Firmware, payload.Firmware)
	mapping.ApplyPointer(&existing.OS, payload.OS)
	mapping.ApplyPointer(&existing.Licenses, payload.Licenses)
	mapping.ApplyPointer(&existing.PoleID, payload.PoleID)
	mapping.ApplyPointer(&existing.JBID, payload.JBID)
	mapping.ApplyPointer(&existing.LandmarkID, payload.LandmarkID)
	mapping.ApplyPointer(&existing.DistrictID, payload.DistrictID)
	mapping.ApplyPointer(&existing.RegionID, payload.RegionID)
	mapping.ApplyPointer(&existing.ProjectPhase, payload.ProjectPhase)
	mapping.ApplyPointer(&existing.Lat, payload.Lat)
	mapping.ApplyPointer(&existing.Lng, payload.Lng)
	mapping.ApplyPointer(&existing.LandmarkName, payload.LandmarkName)
	mapping.ApplyPointer(&existing.FRSCamera, payload.FRSCamera)
	mapping.ApplyPointer(&existing.PowerReq, payload.PowerReq)
	mapping.ApplyPointer(&existing.LocalIfName, payload.LocalIfName)
	mapping.ApplyPointer(&existing.LocalIfIP, payload.LocalIfIP)
	mapping.ApplyPointer(&existing.RemoteIfName, payload.RemoteIfName)
	mapping.ApplyPointer(&existing.RemoteIfIP, payload.RemoteIfIP)
	mapping.ApplyPointer(&existing.CableID, payload.CableID)
	mapping.ApplyPointer(&existing.PhysicalLinkType, payload.PhysicalLinkType)
	mapping.ApplyPointer(&existing.LogicalLinkType, payload.LogicalLinkType)
	mapping.ApplyPointer(&existing.SegmentType, payload.SegmentType)
	mapping.ApplyPointer(&existing.SegmentSwitches, payload.SegmentSwitches)
	mapping.ApplyPointer(&existing.SegmentJunctions, payload.SegmentJunctions)
	mapping.ApplyPointer(&existing.SegmentInstanceNo, payload.SegmentInstanceNo)
	mapping.ApplyPointer(&existing.FiberCoreUsage, payload.FiberCoreUsage)
	mapping.ApplyPointer(&existing.ProposedVLAN, payload.ProposedVLAN)
	mapping.ApplyPointer(&existing.ProposedSubnet, payload.ProposedSubnet)
	mapping.ApplyPointer(&existing.IPAssignment, payload.IPAssignment)
	mapping.ApplyPointer(&existing.VideoPriority, payload.VideoPriority)
	mapping.ApplyPointer(&existing.SecurityZone, payload.SecurityZone)
	mapping.ApplyPointer(&existing.LastConfigChange, payload.LastConfigChange)
	mapping.ApplyPointer(&existing.LastConfigBackup, payload.LastConfigBackup)
	mapping.ApplyPointer(&existing.MaintenanceSchedule, payload.MaintenanceSchedule)
	mapping.ApplyPointer(&existing.LastMaintenance, payload.LastMaintenance)
	mapping.ApplyPointer(&existing.MonitoringTool, payload.MonitoringTool)
	mapping.ApplyPointer(&existing.NetworkProvider, payload.NetworkProvider)
	mapping.ApplyPointer(&existing.StaticRouterIP, payload.StaticRouterIP)
	mapping.ApplyPointer(&existing.LandlineNumber, payload.LandlineNumber)
	mapping.ApplyPointer(&existing.TerminationType, payload.TerminationType)
	mapping.ApplyPointer(&existing.Router1, payload.Router1)
	mapping.ApplyPointer(&existing.Router2, payload.Router2)
	mapping.ApplyPointer(&existing.HTTPPort, payload.HTTPPort)
	mapping.ApplyPointer(&existing.RTSPPort, payload.RTSPPort)

	return store.Update(ctx, existing)
}
