package configurator

import (
	"fmt"
	"strings"
	"time"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
	"techfix-shop/internal/pricing"
)

// ColorSlots is the number of addressable color slots on a multicolor
// printer. Slot 0 must always be filled; trailing empty slots are allowed.
const ColorSlots = 5

// PrintWizard configures a 3D-print job. The printer is chosen first; the
// remaining fields form one step and may be answered in any order. A
// multicolor printer unlocks the extra color slots, a single-color printer
// accepts slot 0 only.
type PrintWizard struct {
	cat        *catalog.Model
	printerID  string
	multicolor bool
	filamentID string
	colors     [ColorSlots]string
	strengthID string
	partsCount int
	fileName   string
}

// NewPrint returns an empty print wizard over the given catalog.
func NewPrint(cat *catalog.Model) *PrintWizard {
	return &PrintWizard{cat: cat}
}

// PrintState is a snapshot of the wizard's current selections.
type PrintState struct {
	Printer    string   `json:"printer,omitempty"`
	Multicolor bool     `json:"multicolor"`
	Filament   string   `json:"filament,omitempty"`
	Colors     []string `json:"colors"`
	Strength   string   `json:"strength,omitempty"`
	PartsCount int      `json:"partsCount,omitempty"`
	FileName   string   `json:"fileName,omitempty"`
}

// State returns the current selections. Colors always has ColorSlots
// entries; unfilled slots are empty strings.
func (w *PrintWizard) State() PrintState {
	return PrintState{
		Printer:    w.printerID,
		Multicolor: w.multicolor,
		Filament:   w.filamentID,
		Colors:     w.colors[:],
		Strength:   w.strengthID,
		PartsCount: w.partsCount,
		FileName:   w.fileName,
	}
}

// Reset clears all selections.
func (w *PrintWizard) Reset() {
	*w = PrintWizard{cat: w.cat}
}

// SelectPrinter picks the printer. Switching printers discards every color
// slot: the slot layout depends on the printer's multicolor capability, so
// colors must be re-entered.
func (w *PrintWizard) SelectPrinter(id string) error {
	printer, ok := w.cat.Printer(id)
	if !ok {
		return domain.Invalid("printer", "unknown printer")
	}
	if id != w.printerID {
		w.colors = [ColorSlots]string{}
	}
	w.printerID = id
	w.multicolor = printer.Multicolor
	return nil
}

// SetFilament picks the filament material.
func (w *PrintWizard) SetFilament(id string) error {
	if _, ok := w.cat.Filament(id); !ok {
		return domain.Invalid("filament", "unknown filament")
	}
	w.filamentID = id
	return nil
}

// SetColor assigns a color slot. Slots beyond 0 are only addressable on a
// multicolor printer. An empty id clears the slot.
func (w *PrintWizard) SetColor(slot int, id string) error {
	if w.printerID == "" {
		return domain.Invalid("color", "select a printer first")
	}
	if slot < 0 || slot >= ColorSlots {
		return domain.Invalid("color", fmt.Sprintf("slot must be 0..%d", ColorSlots-1))
	}
	if slot > 0 && !w.multicolor {
		return domain.Invalid("color", "printer supports a single color")
	}
	if id == "" {
		w.colors[slot] = ""
		return nil
	}
	if _, ok := w.cat.Color(id); !ok {
		return domain.Invalid("color", "unknown color")
	}
	w.colors[slot] = id
	return nil
}

// SetStrength picks the infill strength.
func (w *PrintWizard) SetStrength(id string) error {
	if _, ok := w.cat.Strength(id); !ok {
		return domain.Invalid("strength", "unknown strength")
	}
	w.strengthID = id
	return nil
}

// SetPartsCount sets how many parts the uploaded file contains.
func (w *PrintWizard) SetPartsCount(n int) error {
	if n <= 0 {
		return domain.Invalid("partsCount", "must be at least 1")
	}
	w.partsCount = n
	return nil
}

// SetFile records the uploaded model file name. Upload itself is handled by
// the file-storage collaborator.
func (w *PrintWizard) SetFile(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Required("file")
	}
	w.fileName = strings.TrimSpace(name)
	return nil
}

// chosenColors returns the filled slots in order, empties omitted.
func (w *PrintWizard) chosenColors() []string {
	var out []string
	for _, c := range w.colors {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Price sums the priced print options: filament, strength and every chosen
// color. Deleted references price as 0.
func (w *PrintWizard) Price() float64 {
	all := w.cat.WithInactive()
	var sum float64
	if p, ok := all.Filament(w.filamentID); ok {
		sum += pricing.Sanitize(p.Price)
	}
	if p, ok := all.Strength(w.strengthID); ok {
		sum += pricing.Sanitize(p.Price)
	}
	for _, c := range w.chosenColors() {
		if p, ok := all.Color(c); ok {
			sum += pricing.Sanitize(p.Price)
		}
	}
	return pricing.Round(sum)
}

// AddToCart is the terminal action. Every field is required, including
// color slot 0; the first missing one is named in the error. The caller
// resets the wizard once the item is safely in the cart.
func (w *PrintWizard) AddToCart() (domain.CartItem, error) {
	switch {
	case w.printerID == "":
		return domain.CartItem{}, domain.Required("printer")
	case w.filamentID == "":
		return domain.CartItem{}, domain.Required("filament")
	case w.colors[0] == "":
		return domain.CartItem{}, domain.Required("color")
	case w.strengthID == "":
		return domain.CartItem{}, domain.Required("strength")
	case w.partsCount <= 0:
		return domain.CartItem{}, domain.Required("partsCount")
	case w.fileName == "":
		return domain.CartItem{}, domain.Required("file")
	}

	colors := w.chosenColors()
	colorNames := make([]string, 0, len(colors))
	for _, c := range colors {
		colorNames = append(colorNames, w.cat.ResolveLabel("printing/colors", c))
	}

	printerName := w.cat.ResolveLabel("printing/printers", w.printerID)
	filamentName := w.cat.ResolveLabel("printing/filaments", w.filamentID)
	strengthName := w.cat.ResolveLabel("printing/strengths", w.strengthID)

	item := domain.CartItem{
		Kind:  domain.ItemKindPrint,
		Title: fmt.Sprintf("3D print (%s)", printerName),
		Description: fmt.Sprintf("%s, %s, %s, %d part(s), %s",
			filamentName, strings.Join(colorNames, "/"), strengthName, w.partsCount, w.fileName),
		Price: w.Price(),
		Meta: map[string]string{
			"printer":    w.printerID,
			"filament":   w.filamentID,
			"colors":     strings.Join(colors, ","),
			"strength":   w.strengthID,
			"partsCount": fmt.Sprintf("%d", w.partsCount),
			"file":       w.fileName,
		},
		CreatedAt: time.Now().UTC(),
	}
	return item, nil
}
