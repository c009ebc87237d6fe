package reconcile

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
	"github.com/fieldgrid-io/fieldgrid/pkg/mapping"
)

// PoleSchema reconciles the field-device layout (marker header "Sr.") into
// landmarks, poles and, when a JB ID is present, junction boxes.
func PoleSchema(ctx context.Context, s *Stores, sheet *excel.Sheet) (*Result, error) {
	return poleSchema(ctx, s, sheet, false, "Pole schema import finished")
}

// JunctionBoxSchema is the strict variant of PoleSchema: rows without a
// JB ID are skipped instead of ingested pole-only.
func JunctionBoxSchema(ctx context.Context, s *Stores, sheet *excel.Sheet) (*Result, error) {
	return poleSchema(ctx, s, sheet, true, "Junction-box schema import finished")
}

func poleSchema(ctx context.Context, s *Stores, sheet *excel.Sheet, requireJB bool, message string) (*Result, error) {
	header, dataStart, err := findHeaderByMarker(sheet.Rows, "Sr.")
	if err != nil {
		return nil, err
	}

	res := &Result{Message: message}
	for _, row := range sheet.Rows[dataStart:] {
		col := func(name string) any { return header.value(row, name) }

		landmarkCode := col("Landmark ID")
		poleCode := col("Pole Location")
		regionName := col("Region")
		districtName := col("District")
		jbCode := col("JB ID")

		if !present(poleCode) || !present(regionName) || !present(districtName) || !present(landmarkCode) {
			res.RowsSkipped++
			continue
		}
		if requireJB && !present(jbCode) {
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

		landmarkName := asString(col("Landmark"))
		lat := asFloat(col("Latitude"))
		lng := asFloat(col("Longitude"))

		landmark, err := getOrCreateByCode(ctx, s.Landmarks, mustString(landmarkCode), func() *site.Landmark {
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
		mapping.ApplyPointer(&landmark.Name, landmarkName)
		mapping.ApplyPointer(&landmark.Lat, lat)
		mapping.ApplyPointer(&landmark.Lng, lng)
		if err := s.Landmarks.Update(ctx, landmark); err != nil {
			return nil, err
		}

		pole, err := getOrCreateByCode(ctx, s.Poles, mustString(poleCode), func() *site.Pole {
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
		mapping.ApplyPointer(&pole.LocationName, landmarkName)
		mapping.ApplyPointer(&pole.Lat, lat)
		mapping.ApplyPointer(&pole.Lng, lng)
		if err := s.Poles.Update(ctx, pole); err != nil {
			return nil, err
		}

		if present(jbCode) {
			jb, err := getOrCreateByCode(ctx, s.JunctionBoxes, mustString(jbCode), func() *site.JunctionBox {
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
			mapping.ApplyPointer(&jb.Lat, lat)
			mapping.ApplyPointer(&jb.Lng, lng)
			if err := s.JunctionBoxes.Update(ctx, jb); err != nil {
				return nil, err
			}
		}

		res.RowsIngested++
	}
	return res, nil
}
