package catalog

import "strings"

// ResolveLabel translates an id selected at some point in the past into its
// display name. The path addresses a catalog section the way selections
// reference it, e.g. "services/phone/brands", "services/phone/repairs",
// "builds/cpu-intel", "printing/colors".
//
// Entries that were deleted or deactivated after being referenced by an
// order resolve to the raw id. This fallback is deliberate: historical
// orders must keep rendering, so ResolveLabel never fails.
func (m *Model) ResolveLabel(path, id string) string {
	if id == "" {
		return ""
	}
	all := m.WithInactive()
	parts := strings.Split(path, "/")
	switch parts[0] {
	case "services":
		if len(parts) < 3 {
			return id
		}
		device := parts[1]
		switch parts[2] {
		case "brands":
			if b, ok := all.Brand(device, id); ok {
				return b.Name
			}
		case "models":
			if len(parts) == 4 {
				if md, ok := all.ModelEntry(device, parts[3], id); ok {
					return md.Name
				}
			}
		case "repairs":
			if r, ok := all.Repair(device, id); ok {
				return r.Name
			}
		}
	case "builds":
		if len(parts) == 2 {
			if p, ok := all.Part(parts[1], id); ok {
				return p.Name
			}
		}
	case "printing":
		if len(parts) != 2 {
			return id
		}
		switch parts[1] {
		case "printers":
			if p, ok := all.Printer(id); ok {
				return p.Name
			}
		case "filaments":
			if p, ok := all.Filament(id); ok {
				return p.Name
			}
		case "colors":
			if p, ok := all.Color(id); ok {
				return p.Name
			}
		case "strengths":
			if p, ok := all.Strength(id); ok {
				return p.Name
			}
		case "otherItems":
			if p, ok := all.OtherItem(id); ok {
				return p.Name
			}
		}
	}
	return id
}
