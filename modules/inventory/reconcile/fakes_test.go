package reconcile

import (
	"context"

	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/component"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/credential"
	"github.com/fieldgrid-io/fieldgrid/modules/inventory/domain/site"
	"github.com/fieldgrid-io/fieldgrid/pkg/repo"
)

// In-memory stores backing reconciler tests. IDs are assigned sequentially
// per store, starting at 1.

type memRegions struct {
	byName map[string]*site.Region
	nextID int64
}

func newMemRegions() *memRegions { return &memRegions{byName: map[string]*site.Region{}} }

func (m *memRegions) GetByName(_ context.Context, name string) (*site.Region, error) {
	if r, ok := m.byName[name]; ok {
		return r, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memRegions) Create(_ context.Context, r *site.Region) (*site.Region, error) {
	m.nextID++
	r.ID = m.nextID
	m.byName[r.Name] = r
	return r, nil
}

type districtKey struct {
	name     string
	regionID int64
}

type memDistricts struct {
	byKey  map[districtKey]*site.District
	nextID int64
}

func newMemDistricts() *memDistricts { return &memDistricts{byKey: map[districtKey]*site.District{}} }

func (m *memDistricts) GetByNameAndRegion(_ context.Context, name string, regionID int64) (*site.District, error) {
	if d, ok := m.byKey[districtKey{name, regionID}]; ok {
		return d, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memDistricts) Create(_ context.Context, d *site.District) (*site.District, error) {
	m.nextID++
	d.ID = m.nextID
	m.byKey[districtKey{d.Name, d.RegionID}] = d
	return d, nil
}

type memLandmarks struct {
	byCode map[string]*site.Landmark
	nextID int64
}

func newMemLandmarks() *memLandmarks { return &memLandmarks{byCode: map[string]*site.Landmark{}} }

func (m *memLandmarks) GetByCode(_ context.Context, code string) (*site.Landmark, error) {
	if l, ok := m.byCode[code]; ok {
		return l, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memLandmarks) Create(_ context.Context, l *site.Landmark) (*site.Landmark, error) {
	m.nextID++
	l.ID = m.nextID
	m.byCode[l.Code] = l
	return l, nil
}

func (m *memLandmarks) Update(_ context.Context, l *site.Landmark) error {
	m.byCode[l.Code] = l
	return nil
}

type memPoles struct {
	byCode map[string]*site.Pole
	nextID int64
}

func newMemPoles() *memPoles { return &memPoles{byCode: map[string]*site.Pole{}} }

func (m *memPoles) GetByCode(_ context.Context, code string) (*site.Pole, error) {
	if p, ok := m.byCode[code]; ok {
		return p, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memPoles) Create(_ context.Context, p *site.Pole) (*site.Pole, error) {
	m.nextID++
	p.ID = m.nextID
	m.byCode[p.Code] = p
	return p, nil
}

func (m *memPoles) Update(_ context.Context, p *site.Pole) error {
	m.byCode[p.Code] = p
	return nil
}

type memJBs struct {
	byCode map[string]*site.JunctionBox
	nextID int64
}

func newMemJBs() *memJBs { return &memJBs{byCode: map[string]*site.JunctionBox{}} }

func (m *memJBs) GetByCode(_ context.Context, code string) (*site.JunctionBox, error) {
	if jb, ok := m.byCode[code]; ok {
		return jb, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memJBs) Create(_ context.Context, jb *site.JunctionBox) (*site.JunctionBox, error) {
	m.nextID++
	jb.ID = m.nextID
	m.byCode[jb.Code] = jb
	return jb, nil
}

func (m *memJBs) Update(_ context.Context, jb *site.JunctionBox) error {
	m.byCode[jb.Code] = jb
	return nil
}

type memComponents struct {
	byCode  map[string]*component.Component
	nextID  int64
	creates int
	updates int
}

func newMemComponents() *memComponents {
	return &memComponents{byCode: map[string]*component.Component{}}
}

func (m *memComponents) GetByCode(_ context.Context, code string) (*component.Component, error) {
	if c, ok := m.byCode[code]; ok {
		return c, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memComponents) Create(_ context.Context, c *component.Component) (*component.Component, error) {
	m.nextID++
	c.ID = m.nextID
	m.byCode[c.ComponentCode] = c
	m.creates++
	return c, nil
}

func (m *memComponents) Update(_ context.Context, c *component.Component) error {
	m.byCode[c.ComponentCode] = c
	m.updates++
	return nil
}

type memCredentials struct {
	byCode  map[string]*credential.Credential
	nextID  int64
	creates int
}

func newMemCredentials() *memCredentials {
	return &memCredentials{byCode: map[string]*credential.Credential{}}
}

func (m *memCredentials) GetByCode(_ context.Context, code string) (*credential.Credential, error) {
	if c, ok := m.byCode[code]; ok {
		return c, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memCredentials) Create(_ context.Context, c *credential.Credential) (*credential.Credential, error) {
	m.nextID++
	c.ID = m.nextID
	if c.ComponentCode != nil {
		m.byCode[*c.ComponentCode] = c
	}
	m.creates++
	return c, nil
}

func (m *memCredentials) Update(_ context.Context, c *credential.Credential) error {
	if c.ComponentCode != nil {
		m.byCode[*c.ComponentCode] = c
	}
	return nil
}

type memStores struct {
	regions     *memRegions
	districts   *memDistricts
	landmarks   *memLandmarks
	poles       *memPoles
	jbs         *memJBs
	components  *memComponents
	credentials *memCredentials
}

func newMemStores() *memStores {
	return &memStores{
		regions:     newMemRegions(),
		districts:   newMemDistricts(),
		landmarks:   newMemLandmarks(),
		poles:       newMemPoles(),
		jbs:         newMemJBs(),
		components:  newMemComponents(),
		credentials: newMemCredentials(),
	}
}

func (m *memStores) stores() *Stores {
	return &Stores{
		Regions:       m.regions,
		Districts:     m.districts,
		Landmarks:     m.landmarks,
		Poles:         m.poles,
		JunctionBoxes: m.jbs,
		Components:    m.components,
		Credentials:   m.credentials,
	}
}
