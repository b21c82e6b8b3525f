// Package configurator implements the three selection wizards: device
// repair, custom PC/server build and 3D printing. Each wizard is a small
// state machine over a catalog model: steps are answered one at a time,
// changing an upstream branching field clears everything chosen after it,
// and the terminal action produces a cart item with all display fields
// resolved. Wizards hold per-session state only; nothing is persisted until
// an item reaches the cart.
package configurator

import (
	"fmt"
	"strings"
	"time"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
	"techfix-shop/internal/pricing"
)

// RepairWizard walks Device -> Brand -> Model -> Repair. Selecting a repair
// is terminal: it returns the cart item and resets the wizard.
type RepairWizard struct {
	cat     *catalog.Model
	device  string
	brandID string
	modelID string
}

// NewRepair returns an empty repair wizard over the given catalog.
func NewRepair(cat *catalog.Model) *RepairWizard {
	return &RepairWizard{cat: cat}
}

// RepairState is a snapshot of the wizard's current selections.
type RepairState struct {
	Device string `json:"device,omitempty"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
}

// State returns the current selections.
func (w *RepairWizard) State() RepairState {
	return RepairState{Device: w.device, Brand: w.brandID, Model: w.modelID}
}

// Reset clears all selections.
func (w *RepairWizard) Reset() {
	w.device, w.brandID, w.modelID = "", "", ""
}

// SelectDevice picks the device kind and clears brand and model.
func (w *RepairWizard) SelectDevice(device string) error {
	if _, ok := w.cat.Service(device); !ok {
		return domain.Invalid("device", "unknown device")
	}
	w.device = device
	w.brandID = ""
	w.modelID = ""
	return nil
}

// SelectBrand picks the brand; a device must be chosen first.
func (w *RepairWizard) SelectBrand(brandID string) error {
	if w.device == "" {
		return domain.Invalid("brand", "select a device first")
	}
	if _, ok := w.cat.Brand(w.device, brandID); !ok {
		return domain.Invalid("brand", "unknown brand")
	}
	if brandID != w.brandID {
		w.modelID = ""
	}
	w.brandID = brandID
	return nil
}

// SelectModel picks the model; a brand must be chosen first.
func (w *RepairWizard) SelectModel(modelID string) error {
	if w.brandID == "" {
		return domain.Invalid("model", "select a brand first")
	}
	if _, ok := w.cat.ModelEntry(w.device, w.brandID, modelID); !ok {
		return domain.Invalid("model", "unknown model")
	}
	w.modelID = modelID
	return nil
}

// SelectRepair is the terminal action: it validates the full selection and
// builds the cart item. No item is produced when any upstream step is
// missing. The caller resets the wizard once the item is safely in the
// cart, so a failed append loses nothing.
func (w *RepairWizard) SelectRepair(repairID string) (domain.CartItem, error) {
	switch {
	case w.device == "":
		return domain.CartItem{}, domain.Required("device")
	case w.brandID == "":
		return domain.CartItem{}, domain.Required("brand")
	case w.modelID == "":
		return domain.CartItem{}, domain.Required("model")
	}
	repair, ok := w.cat.Repair(w.device, repairID)
	if !ok {
		return domain.CartItem{}, domain.Invalid("repair", "unknown repair")
	}

	svc, _ := w.cat.Service(w.device)
	brandName := w.cat.ResolveLabel("services/"+w.device+"/brands", w.brandID)
	modelName := w.cat.ResolveLabel("services/"+w.device+"/models/"+w.brandID, w.modelID)

	item := domain.CartItem{
		Kind:        domain.ItemKindRepair,
		Title:       fmt.Sprintf("%s %s", brandName, modelName),
		Description: strings.TrimSpace(svc.Name + ": " + repair.Name),
		Price:       pricing.Sanitize(repair.Price),
		Meta: map[string]string{
			"device": w.device,
			"brand":  w.brandID,
			"model":  w.modelID,
			"repair": repair.ID,
		},
		CreatedAt: time.Now().UTC(),
	}
	return item, nil
}
