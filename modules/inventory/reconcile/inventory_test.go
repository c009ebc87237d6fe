package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
)

func inventorySheet(rows [][]any) *excel.Sheet {
	header := []any{"Component ID", "Component Type", "Region", "District", "Landmark ID", "Pole Location", "JB ID", "Model/ Specific Device", "Latitude", "Longitude"}
	all := [][]any{
		{"Network Component Inventory", nil, nil},
		header,
	}
	return &excel.Sheet{Name: "Enum-1", Rows: append(all, rows...)}
}

func TestComponentInventory_FullHierarchy(t *testing.T) {
	mem := newMemStores()
	sheet := inventorySheet([][]any{
		{"CAM-001", "Camera", "JAMMU", "Jammu South", "LM-01", "P-01", "JB-01", "Axis P1448", 32.73, 74.87},
	})

	res, err := ComponentInventory(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsIngested)
	assert.Equal(t, 0, res.RowsSkipped)

	region, err := mem.regions.GetByName(context.Background(), "JAMMU")
	require.NoError(t, err)
	district, err := mem.districts.GetByNameAndRegion(context.Background(), "Jammu South", region.ID)
	require.NoError(t, err)
	landmark, err := mem.landmarks.GetByCode(context.Background(), "LM-01")
	require.NoError(t, err)
	assert.Equal(t, district.ID, landmark.DistrictID)

	pole, err := mem.poles.GetByCode(context.Background(), "P-01")
	require.NoError(t, err)
	assert.Equal(t, landmark.ID, pole.LandmarkID)

	jb, err := mem.jbs.GetByCode(context.Background(), "JB-01")
	require.NoError(t, err)
	assert.Equal(t, pole.ID, jb.PoleID)

	comp, err := mem.components.GetByCode(context.Background(), "CAM-001")
	require.NoError(t, err)
	assert.Equal(t, "Camera", comp.ComponentType)
	require.NotNil(t, comp.Model)
	assert.Equal(t, "Axis P1448", *comp.Model)
	require.NotNil(t, comp.PoleID)
	assert.Equal(t, pole.ID, *comp.PoleID)
	require.NotNil(t, comp.JBID)
	assert.Equal(t, jb.ID, *comp.JBID)
	require.NotNil(t, comp.Lat)
	assert.InDelta(t, 32.73, *comp.Lat, 0.001)
}

func TestComponentInventory_SkipsIncompleteRows(t *testing.T) {
	mem := newMemStores()
	sheet := inventorySheet([][]any{
		{nil, "Camera", "JAMMU", "Jammu South", nil, nil, nil, nil, nil, nil},
		{"CAM-002", nil, "JAMMU", "Jammu South", nil, nil, nil, nil, nil, nil},
		{"CAM-003", "Camera", "", "Jammu South", nil, nil, nil, nil, nil, nil},
		{"CAM-004", "Camera", "JAMMU", "Jammu South", nil, nil, nil, nil, nil, nil},
	})

	res, err := ComponentInventory(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsIngested)
	assert.Equal(t, 3, res.RowsSkipped)
	assert.Equal(t, 1, mem.components.creates)
}

func TestComponentInventory_AbandonsRowOnMissingPrerequisite(t *testing.T) {
	t.Run("pole without landmark", func(t *testing.T) {
		mem := newMemStores()
		sheet := inventorySheet([][]any{
			{"CAM-010", "Camera", "JAMMU", "Jammu South", nil, "P-10", nil, nil, nil, nil},
		})

		res, err := ComponentInventory(context.Background(), mem.stores(), sheet)
		require.NoError(t, err)
		assert.Equal(t, 0, res.RowsIngested)
		assert.Equal(t, 1, res.RowsSkipped)

		// the whole row is abandoned: no pole and no component either
		_, err = mem.poles.GetByCode(context.Background(), "P-10")
		assert.Error(t, err)
		assert.Equal(t, 0, mem.components.creates)
	})

	t.Run("junction box without pole", func(t *testing.T) {
		mem := newMemStores()
		sheet := inventorySheet([][]any{
			{"CAM-011", "Camera", "JAMMU", "Jammu South", "LM-11", nil, "JB-11", nil, nil, nil},
		})

		res, err := ComponentInventory(context.Background(), mem.stores(), sheet)
		require.NoError(t, err)
		assert.Equal(t, 0, res.RowsIngested)
		assert.Equal(t, 1, res.RowsSkipped)

		// the landmark was already reconciled before the abandon point
		_, err = mem.landmarks.GetByCode(context.Background(), "LM-11")
		assert.NoError(t, err)
		_, err = mem.jbs.GetByCode(context.Background(), "JB-11")
		assert.Error(t, err)
		assert.Equal(t, 0, mem.components.creates)
	})
}

func TestComponentInventory_UpsertMergesSparseRows(t *testing.T) {
	mem := newMemStores()
	first := inventorySheet([][]any{
		{"SW-001", "Switch", "JAMMU", "Jammu South", nil, nil, nil, "Cisco 2960", nil, nil},
	})
	second := inventorySheet([][]any{
		{"SW-001", "Access Switch", "JAMMU", "Jammu South", nil, nil, nil, nil, 32.7, 74.8},
	})

	_, err := ComponentInventory(context.Background(), mem.stores(), first)
	require.NoError(t, err)
	_, err = ComponentInventory(context.Background(), mem.stores(), second)
	require.NoError(t, err)

	assert.Equal(t, 1, mem.components.creates)

	comp, err := mem.components.GetByCode(context.Background(), "SW-001")
	require.NoError(t, err)
	assert.Equal(t, "Access Switch", comp.ComponentType)
	// Model survives the second pass, which did not carry one
	require.NotNil(t, comp.Model)
	assert.Equal(t, "Cisco 2960", *comp.Model)
	require.NotNil(t, comp.Lat)
	assert.InDelta(t, 32.7, *comp.Lat, 0.001)
}

func TestComponentInventory_ReimportIsStable(t *testing.T) {
	mem := newMemStores()
	sheet := inventorySheet([][]any{
		{"CAM-020", "Camera", "JAMMU", "Jammu South", "LM-20", "P-20", "JB-20", nil, nil, nil},
	})

	for i := 0; i < 3; i++ {
		res, err := ComponentInventory(context.Background(), mem.stores(), sheet)
		require.NoError(t, err)
		assert.Equal(t, 1, res.RowsIngested)
	}

	assert.Equal(t, 1, mem.components.creates)
	assert.Len(t, mem.landmarks.byCode, 1)
	assert.Len(t, mem.poles.byCode, 1)
	assert.Len(t, mem.jbs.byCode, 1)
	assert.Len(t, mem.regions.byName, 1)
}

func TestComponentInventory_NumericCodesKeepWholeForm(t *testing.T) {
	mem := newMemStores()
	sheet := inventorySheet([][]any{
		{float64(1001), "Camera", "JAMMU", "Jammu South", nil, nil, nil, nil, nil, nil},
	})

	_, err := ComponentInventory(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)

	_, err = mem.components.GetByCode(context.Background(), "1001")
	assert.NoError(t, err)
}

func TestComponentInventory_MissingHeaderFails(t *testing.T) {
	mem := newMemStores()
	sheet := &excel.Sheet{Name: "Enum-1", Rows: [][]any{
		{"some", "other", "columns"},
		{"Component ID", "Component Type", "Region"},
	}}

	_, err := ComponentInventory(context.Background(), mem.stores(), sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find header row")
}
