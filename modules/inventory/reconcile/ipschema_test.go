package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
)

func poleSchemaSheet(name string, rows [][]any) *excel.Sheet {
	all := [][]any{
		{"IP SCHEMA"},
		{nil},
		{"Prepared by network team"},
		{"Sr.", "Region", "District", "Landmark ID", "Landmark", "Pole Location", "JB ID", "Latitude", "Longitude"},
	}
	return &excel.Sheet{Name: name, Rows: append(all, rows...)}
}

func TestPoleSchema_IngestsHierarchy(t *testing.T) {
	mem := newMemStores()
	sheet := poleSchemaSheet("Field Device Details - Poles", [][]any{
		{float64(1), "JAMMU", "Jammu South", "LM-01", "Clock Tower", "P-01", nil, 32.73, 74.87},
		{float64(2), "JAMMU", "Jammu South", "LM-01", "Clock Tower", "P-02", "JB-02", 32.74, 74.88},
	})

	res, err := PoleSchema(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsIngested)
	assert.Equal(t, 0, res.RowsSkipped)

	landmark, err := mem.landmarks.GetByCode(context.Background(), "LM-01")
	require.NoError(t, err)
	require.NotNil(t, landmark.Name)
	assert.Equal(t, "Clock Tower", *landmark.Name)
	require.NotNil(t, landmark.Lat)

	pole, err := mem.poles.GetByCode(context.Background(), "P-01")
	require.NoError(t, err)
	assert.Equal(t, landmark.ID, pole.LandmarkID)
	require.NotNil(t, pole.LocationName)
	assert.Equal(t, "Clock Tower", *pole.LocationName)

	// JB only where the row carried one
	_, err = mem.jbs.GetByCode(context.Background(), "JB-02")
	assert.NoError(t, err)
	assert.Len(t, mem.jbs.byCode, 1)
}

func TestPoleSchema_SkipsRowsMissingRequired(t *testing.T) {
	mem := newMemStores()
	sheet := poleSchemaSheet("Field Device Details - Poles", [][]any{
		{float64(1), "JAMMU", "Jammu South", nil, "Clock Tower", "P-01", nil, nil, nil},
		{float64(2), "JAMMU", nil, "LM-02", nil, "P-02", nil, nil, nil},
		{float64(3), "JAMMU", "Jammu South", "LM-03", nil, nil, nil, nil, nil},
		{nil, nil, nil, nil, nil, nil, nil, nil, nil},
	})

	res, err := PoleSchema(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowsIngested)
	assert.Equal(t, 4, res.RowsSkipped)
}

func TestJunctionBoxSchema_RequiresJB(t *testing.T) {
	mem := newMemStores()
	sheet := poleSchemaSheet("Field Device Details - JB", [][]any{
		{float64(1), "JAMMU", "Jammu South", "LM-01", "Clock Tower", "P-01", nil, nil, nil},
		{float64(2), "JAMMU", "Jammu South", "LM-01", "Clock Tower", "P-01", "JB-01", 32.7, 74.8},
	})

	res, err := JunctionBoxSchema(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsIngested)
	assert.Equal(t, 1, res.RowsSkipped)

	jb, err := mem.jbs.GetByCode(context.Background(), "JB-01")
	require.NoError(t, err)
	require.NotNil(t, jb.Lat)
	assert.InDelta(t, 32.7, *jb.Lat, 0.001)
}

func TestPoleSchema_BackfillDoesNotErase(t *testing.T) {
	mem := newMemStores()
	rich := poleSchemaSheet("Field Device Details - Poles", [][]any{
		{float64(1), "JAMMU", "Jammu South", "LM-01", "Clock Tower", "P-01", nil, 32.73, 74.87},
	})
	sparse := poleSchemaSheet("Field Device Details - Poles", [][]any{
		{float64(1), "JAMMU", "Jammu South", "LM-01", nil, "P-01", nil, nil, nil},
	})

	_, err := PoleSchema(context.Background(), mem.stores(), rich)
	require.NoError(t, err)
	_, err = PoleSchema(context.Background(), mem.stores(), sparse)
	require.NoError(t, err)

	landmark, err := mem.landmarks.GetByCode(context.Background(), "LM-01")
	require.NoError(t, err)
	require.NotNil(t, landmark.Name)
	assert.Equal(t, "Clock Tower", *landmark.Name)
	require.NotNil(t, landmark.Lat)
	assert.InDelta(t, 32.73, *landmark.Lat, 0.001)
}

func TestPoleSchema_MissingMarkerFails(t *testing.T) {
	mem := newMemStores()
	sheet := &excel.Sheet{Name: "Field Device Details - Poles", Rows: [][]any{
		{"Region", "District", "Pole Location"},
		{"JAMMU", "Jammu South", "P-01"},
	}}

	_, err := PoleSchema(context.Background(), mem.stores(), sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Sr."`)
}
