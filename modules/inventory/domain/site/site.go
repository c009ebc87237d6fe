package site

// The site hierarchy: Region → District → Landmark → Pole → JunctionBox.
// Regions and districts are keyed by name (districts scoped to their
// region); everything below carries a unique business code. Optional fields
// are pointers so reconciliation merges never overwrite data with blanks.

type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type District struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID int64  `json:"region_id"`
}

type Landmark struct {
	ID         int64    `json:"id"`
	Code       string   `json:"code"`
	Name       *string  `json:"name,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	DistrictID int64    `json:"district_id"`
	RegionID   int64    `json:"region_id"`
}

type Pole struct {
	ID           int64    `json:"id"`
	Code         string   `json:"code"`
	LocationName *string  `json:"location_name,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	LandmarkID   int64    `json:"landmark_id"`
	DistrictID   int64    `json:"district_id"`
	RegionID     int64    `json:"region_id"`
}

type JunctionBox struct {
	ID         int64    `json:"id"`
	Code       string   `json:"code"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	PoleID     int64    `json:"pole_id"`
	LandmarkID int64    `json:"landmark_id"`
	DistrictID int64    `json:"district_id"`
	RegionID   int64    `json:"region_id"`
}
