package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/pkg/excel"
	"github.com/fieldgrid-io/fieldgrid/pkg/mapping"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// Credentials reconciles a per-region credentials sheet. The layout has no
// natural key, so one is synthesized from the sheet name and the strongest
// identifier the row carries. Note the leading spaces in " USER ID" and
// " PASSWORD": they are in the source files verbatim.
func Credentials(ctx context.Context, s *Stores, sheet *excel.Sheet) (*Result, error) {
	header, dataStart, err := mergeTwoRowHeader(sheet.Rows)
	if err != nil {
		return nil, err
	}

	res := &Result{Message: fmt.Sprintf("Credentials import from %s finished", sheet.Name)}
	for _, row := range sheet.Rows[dataStart:] {
		col := func(name string) any { return header.value(row, name) }

		sNo := col("S NO")
		appliance := col("APPLIANCE")
		username := firstPresent(header, row, " USER ID", "OS USER ID")
		password := firstPresent(header, row, " PASSWORD", "OS PASSWORD")
		ipAddress := col("IP")
		hostname := col("HOSTNAME")
		accessType := col("SNMP VERSION")
		snmpCommunity := col("SNMP COMMUNITY STRING 1")
		snmpServer := col("SNMP SERVER IP 1")
		snmpTrap := col("SNMP TRAP ENABLED")
		region := col("Region")
		locationName := col("Location")

		hasCredentials := present(appliance) || present(username) || present(password) ||
			present(ipAddress) || present(hostname)
		hasSNMP := present(accessType) || present(snmpCommunity) || present(snmpServer) || present(snmpTrap)
		if !hasCredentials && !hasSNMP {
			res.RowsSkipped++
			continue
		}

		uniqueID := firstOf(hostname, ipAddress, appliance, snmpServer, sNo)
		if !present(uniqueID) {
			res.RowsSkipped++
			continue
		}
		code := fmt.Sprintf("%s-%s", sheet.Name, mustString(uniqueID))

		var notes []string
		appendNote := func(label string, v any) {
			if present(v) {
				notes = append(notes, fmt.Sprintf("%s: %s", label, mustString(v)))
			}
		}
		appendNote("Appliance", appliance)
		appendNote("Region", region)
		appendNote("Location", locationName)
		appendNote("SNMP Community", snmpCommunity)
		appendNote("SNMP Server", snmpServer)

		payload := &credential.Credential{
			ComponentCode: mapping.Pointer(code),
			Username:      asString(username),
			Password:      asString(password),
			IPAddress:     asString(ipAddress),
			Port:          asString(col("Port")),
			AccessType:    asString(firstOf(accessType, snmpCommunity)),
			LastUpdated:   asString(col("Last Updated")),
		}
		if len(notes) > 0 {
			payload.Notes = mapping.Pointer(strings.Join(notes, ", "))
		}

		if err := upsertCredential(ctx, s, code, payload); err != nil {
			return nil, err
		}
		res.RowsIngested++
	}
	return res, nil
}

// upsertCredential folds the payload into the record keyed by the synthetic
// code, touching only fields the row actually carried.
func upsertCredential(ctx context.Context, s *Stores, code string, payload *credential.Credential) error {
	existing, err := s.Credentials.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		_, createErr := s.Credentials.Create(ctx, payload)
		return createErr
	}

	mapping.ApplyPointer(&existing.Username, payload.Username)
	mapping.ApplyPointer(&existing.Password, payload.Password)
	mapping.ApplyPointer(&existing.IPAddress, payload.IPAddress)
	mapping.ApplyPointer(&existing.Port, payload.Port)
	mapping.ApplyPointer(&existing.AccessType, payload.AccessType)
	mapping.ApplyPointer(&existing.Notes, payload.Notes)
	mapping.ApplyPointer(&existing.LastUpdated, payload.LastUpdated)
	return s.Credentials.Update(ctx, existing)
}

// firstOf returns the first usable value, independent of header lookup.
func firstOf(values ...any) any {
	for _, v := range values {
		if present(v) {
			return v
		}
	}
	return nil
}
