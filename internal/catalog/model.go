// Package catalog provides a read-only, typed view over the shop's
// configuration document. It filters inactive entries for customer-facing
// option lists and resolves ids to display names with a safe fallback so
// historical orders keep rendering after catalog edits.
package catalog

import "techfix-shop/internal/domain"

// Model is an immutable projection of one CatalogDocument. Reload the whole
// model after any catalog write; it is never patched in place.
type Model struct {
	doc             domain.CatalogDocument
	includeInactive bool
}

// Load builds a Model over the given document.
func Load(doc domain.CatalogDocument) *Model {
	return &Model{doc: doc}
}

// WithInactive returns a view of the same document that also exposes
// inactive entries, for admin editing.
func (m *Model) WithInactive() *Model {
	return &Model{doc: m.doc, includeInactive: true}
}

// Document returns the underlying document.
func (m *Model) Document() domain.CatalogDocument {
	return m.doc
}

// Announcement returns the current announcement banner.
func (m *Model) Announcement() domain.Announcement {
	return m.doc.Announcement
}

// Checkout returns the fee schedule.
func (m *Model) Checkout() domain.CheckoutConfig {
	return m.doc.Checkout
}

// Devices returns the device keys that have a service configured.
func (m *Model) Devices() []string {
	keys := make([]string, 0, len(m.doc.Services))
	for k := range m.doc.Services {
		keys = append(keys, k)
	}
	return keys
}

// Service returns the service record for a device key.
func (m *Model) Service(device string) (domain.DeviceService, bool) {
	svc, ok := m.doc.Services[device]
	return svc, ok
}

// Brands returns the selectable brands for a device.
func (m *Model) Brands(device string) []domain.Brand {
	svc, ok := m.doc.Services[device]
	if !ok {
		return nil
	}
	var out []domain.Brand
	for _, b := range svc.Brands {
		if b.Active || m.includeInactive {
			out = append(out, b)
		}
	}
	return out
}

// Brand looks up one brand of a device by id.
func (m *Model) Brand(device, brandID string) (domain.Brand, bool) {
	for _, b := range m.Brands(device) {
		if b.ID == brandID {
			return b, true
		}
	}
	return domain.Brand{}, false
}

// Models returns the selectable models of a brand.
func (m *Model) Models(device, brandID string) []domain.Model {
	b, ok := m.Brand(device, brandID)
	if !ok {
		return nil
	}
	var out []domain.Model
	for _, md := range b.Models {
		if md.Active || m.includeInactive {
			out = append(out, md)
		}
	}
	return out
}

// ModelEntry looks up one model by id.
func (m *Model) ModelEntry(device, brandID, modelID string) (domain.Model, bool) {
	for _, md := range m.Models(device, brandID) {
		if md.ID == modelID {
			return md, true
		}
	}
	return domain.Model{}, false
}

// Repairs returns the repair menu of a device.
func (m *Model) Repairs(device string) []domain.Repair {
	svc, ok := m.doc.Services[device]
	if !ok {
		return nil
	}
	var out []domain.Repair
	for _, r := range svc.Repairs {
		if r.Active || m.includeInactive {
			out = append(out, r)
		}
	}
	return out
}

// Repair looks up one repair of a device by id.
func (m *Model) Repair(device, repairID string) (domain.Repair, bool) {
	for _, r := range m.Repairs(device) {
		if r.ID == repairID {
			return r, true
		}
	}
	return domain.Repair{}, false
}

// Parts returns the selectable parts of a custom-build category.
func (m *Model) Parts(category string) []domain.Part {
	return m.filterParts(m.doc.CustomBuilds[category])
}

// Part looks up a part in a custom-build category by id.
func (m *Model) Part(category, id string) (domain.Part, bool) {
	return findPart(m.Parts(category), id)
}

// Printers returns the selectable printers.
func (m *Model) Printers() []domain.Part { return m.filterParts(m.doc.Printing.Printers) }

// Printer looks up a printer by id.
func (m *Model) Printer(id string) (domain.Part, bool) { return findPart(m.Printers(), id) }

// Filaments returns the selectable filaments.
func (m *Model) Filaments() []domain.Part { return m.filterParts(m.doc.Printing.Filaments) }

// Colors returns the selectable print colors.
func (m *Model) Colors() []domain.Part { return m.filterParts(m.doc.Printing.Colors) }

// Strengths returns the selectable print strengths.
func (m *Model) Strengths() []domain.Part { return m.filterParts(m.doc.Printing.Strengths) }

// OtherItems returns the ready-made printed items for sale.
func (m *Model) OtherItems() []domain.Part { return m.filterParts(m.doc.Printing.OtherItems) }

// Filament looks up a filament by id.
func (m *Model) Filament(id string) (domain.Part, bool) { return findPart(m.Filaments(), id) }

// Color looks up a color by id.
func (m *Model) Color(id string) (domain.Part, bool) { return findPart(m.Colors(), id) }

// Strength looks up a strength by id.
func (m *Model) Strength(id string) (domain.Part, bool) { return findPart(m.Strengths(), id) }

// OtherItem looks up a ready-made item by id.
func (m *Model) OtherItem(id string) (domain.Part, bool) { return findPart(m.OtherItems(), id) }

func (m *Model) filterParts(parts []domain.Part) []domain.Part {
	var out []domain.Part
	for _, p := range parts {
		if p.Active || m.includeInactive {
			out = append(out, p)
		}
	}
	return out
}

func findPart(parts []domain.Part, id string) (domain.Part, bool) {
	for _, p := range parts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Part{}, false
}
