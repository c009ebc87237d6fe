package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
)

func credentialsSheet(name string, rows [][]any) *excel.Sheet {
	all := [][]any{
		{"S NO", "APPLIANCE", "HOSTNAME", "IP", " USER ID", " PASSWORD", "Port", "SNMP VERSION", "SNMP COMMUNITY STRING 1", "SNMP SERVER IP 1", "SNMP TRAP ENABLED", nil, nil},
		{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "Region", "Location"},
	}
	return &excel.Sheet{Name: name, Rows: append(all, rows...)}
}

func TestCredentials_SynthesizesCodeFromStrongestIdentifier(t *testing.T) {
	mem := newMemStores()
	sheet := credentialsSheet("JAMMU", [][]any{
		{float64(1), "NVR", "nvr-01", "10.0.0.5", "admin", "secret", "443", nil, nil, nil, nil, "JAMMU", "Clock Tower"},
		{float64(2), "Switch", nil, "10.0.0.9", "admin", "secret", nil, nil, nil, nil, nil, nil, nil},
		{float64(3), "Router", nil, nil, "admin", nil, nil, nil, nil, nil, nil, nil, nil},
	})

	res, err := Credentials(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 3, res.RowsIngested)
	assert.Equal(t, 0, res.RowsSkipped)

	// hostname wins over IP, IP over appliance
	_, err = mem.credentials.GetByCode(context.Background(), "JAMMU-nvr-01")
	assert.NoError(t, err)
	_, err = mem.credentials.GetByCode(context.Background(), "JAMMU-10.0.0.9")
	assert.NoError(t, err)
	_, err = mem.credentials.GetByCode(context.Background(), "JAMMU-Router")
	assert.NoError(t, err)
}

func TestCredentials_NotesAssembly(t *testing.T) {
	mem := newMemStores()
	sheet := credentialsSheet("SAMBA", [][]any{
		{float64(1), "NVR", "nvr-02", nil, "admin", "secret", nil, "v2c", "public", "10.1.1.1", "YES", "SAMBA", "Bus Stand"},
	})

	_, err := Credentials(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)

	cred, err := mem.credentials.GetByCode(context.Background(), "SAMBA-nvr-02")
	require.NoError(t, err)
	require.NotNil(t, cred.Notes)
	assert.Equal(t, "Appliance: NVR, Region: SAMBA, Location: Bus Stand, SNMP Community: public, SNMP Server: 10.1.1.1", *cred.Notes)
	require.NotNil(t, cred.AccessType)
	assert.Equal(t, "v2c", *cred.AccessType)
}

func TestCredentials_AccessTypeFallsBackToCommunity(t *testing.T) {
	mem := newMemStores()
	sheet := credentialsSheet("KATHUA", [][]any{
		{float64(1), nil, "sw-07", nil, nil, nil, nil, nil, "private", nil, nil, nil, nil},
	})

	_, err := Credentials(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)

	cred, err := mem.credentials.GetByCode(context.Background(), "KATHUA-sw-07")
	require.NoError(t, err)
	require.NotNil(t, cred.AccessType)
	assert.Equal(t, "private", *cred.AccessType)
}

func TestCredentials_SkipsRowsWithoutUsableData(t *testing.T) {
	mem := newMemStores()
	sheet := credentialsSheet("JAMMU", [][]any{
		{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
		{float64(7), nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "JAMMU", "Somewhere"},
		{nil, nil, "nvr-03", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
	})

	res, err := Credentials(context.Background(), mem.stores(), sheet)
	require.NoError(t, err)
	// empty row and S-NO-only row skipped; hostname alone is enough
	assert.Equal(t, 1, res.RowsIngested)
	assert.Equal(t, 2, res.RowsSkipped)
}

func TestCredentials_UpsertKeepsFieldsAbsentFromLaterRows(t *testing.T) {
	mem := newMemStores()
	first := credentialsSheet("JAMMU", [][]any{
		{float64(1), "NVR", "nvr-05", "10.0.0.8", "admin", "secret", nil, nil, nil, nil, nil, nil, nil},
	})
	second := credentialsSheet("JAMMU", [][]any{
		{float64(1), nil, "nvr-05", nil, "operator", nil, nil, nil, nil, nil, nil, nil, nil},
	})

	_, err := Credentials(context.Background(), mem.stores(), first)
	require.NoError(t, err)
	_, err = Credentials(context.Background(), mem.stores(), second)
	require.NoError(t, err)

	assert.Equal(t, 1, mem.credentials.creates)

	cred, err := mem.credentials.GetByCode(context.Background(), "JAMMU-nvr-05")
	require.NoError(t, err)
	require.NotNil(t, cred.Username)
	assert.Equal(t, "operator", *cred.Username)
	require.NotNil(t, cred.Password)
	assert.Equal(t, "secret", *cred.Password)
	require.NotNil(t, cred.IPAddress)
	assert.Equal(t, "10.0.0.8", *cred.IPAddress)
}

func TestCredentials_TooFewRowsFails(t *testing.T) {
	mem := newMemStores()
	sheet := &excel.Sheet{Name: "JAMMU", Rows: [][]any{
		{"S NO", "APPLIANCE"},
		{nil, nil},
	}}

	_, err := Credentials(context.Background(), mem.stores(), sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient rows")
}
