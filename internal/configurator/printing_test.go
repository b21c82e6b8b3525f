package configurator

import (
	"errors"
	"testing"

	"techfix-shop/internal/domain"
)

func TestPrintWizardSingleColorPrinter(t *testing.T) {
	w := NewPrint(testCatalog())
	if err := w.SelectPrinter("mk4"); err != nil {
		t.Fatalf("select printer: %v", err)
	}
	if err := w.SetColor(0, "black"); err != nil {
		t.Fatalf("slot 0: %v", err)
	}
	if err := w.SetColor(1, "red"); err == nil {
		t.Fatal("expected slot 1 rejected on single-color printer")
	}
}

func TestPrintWizardMulticolorSlots(t *testing.T) {
	w := NewPrint(testCatalog())
	_ = w.SelectPrinter("xl")
	for slot, color := range map[int]string{0: "black", 1: "red", 2: "blue"} {
		if err := w.SetColor(slot, color); err != nil {
			t.Fatalf("slot %d: %v", slot, err)
		}
	}
	if err := w.SetColor(5, "white"); err == nil {
		t.Fatal("expected out-of-range slot rejected")
	}
	// Clearing a slot is allowed; trailing empties are fine.
	if err := w.SetColor(2, ""); err != nil {
		t.Fatalf("clear slot: %v", err)
	}
	if got := w.chosenColors(); len(got) != 2 {
		t.Fatalf("chosen colors = %v", got)
	}
}

func TestPrinterSwitchResetsColors(t *testing.T) {
	w := NewPrint(testCatalog())
	_ = w.SelectPrinter("xl")
	_ = w.SetColor(0, "black")
	_ = w.SetColor(1, "red")
	_ = w.SetColor(2, "blue")

	if err := w.SelectPrinter("mk4"); err != nil {
		t.Fatalf("switch printer: %v", err)
	}
	st := w.State()
	if st.Multicolor {
		t.Fatal("expected single-color mode after switch")
	}
	for i, c := range st.Colors {
		if c != "" {
			t.Fatalf("slot %d survived printer switch: %q", i, c)
		}
	}
	// Only a single color is accepted from now on.
	if err := w.SetColor(1, "red"); err == nil {
		t.Fatal("expected slot 1 rejected after switching to single-color printer")
	}
	if err := w.SetColor(0, "black"); err != nil {
		t.Fatalf("slot 0: %v", err)
	}
}

func TestPrintWizardAddToCart(t *testing.T) {
	w := NewPrint(testCatalog())
	_ = w.SelectPrinter("xl")
	_ = w.SetFilament("petg")
	_ = w.SetColor(0, "black")
	_ = w.SetColor(1, "red")
	_ = w.SetStrength("strong")
	_ = w.SetPartsCount(3)
	_ = w.SetFile("bracket.stl")

	item, err := w.AddToCart()
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if item.Kind != domain.ItemKindPrint {
		t.Fatalf("kind = %q", item.Kind)
	}
	// 7 (petg) + 3 (strong), colors are free in the fixture
	if item.Price != 10 {
		t.Fatalf("price = %v, want 10", item.Price)
	}
	if item.Meta["colors"] != "black,red" {
		t.Fatalf("colors meta = %q", item.Meta["colors"])
	}

	w.Reset()
	if st := w.State(); st.Printer != "" || st.FileName != "" {
		t.Fatalf("wizard not reset: %+v", st)
	}
}

func TestPrintWizardRequiresEveryField(t *testing.T) {
	w := NewPrint(testCatalog())
	cases := []struct {
		name    string
		prepare func()
		missing string
	}{
		{"printer", func() {}, "printer"},
		{"filament", func() { _ = w.SelectPrinter("mk4") }, "filament"},
		{"color", func() { _ = w.SetFilament("pla") }, "color"},
		{"strength", func() { _ = w.SetColor(0, "black") }, "strength"},
		{"partsCount", func() { _ = w.SetStrength("standard") }, "partsCount"},
		{"file", func() { _ = w.SetPartsCount(1) }, "file"},
	}
	for _, tc := range cases {
		tc.prepare()
		_, err := w.AddToCart()
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.missing {
			t.Fatalf("%s: expected %q named as missing, got %v", tc.name, tc.missing, err)
		}
	}
	_ = w.SetFile("part.stl")
	if _, err := w.AddToCart(); err != nil {
		t.Fatalf("complete wizard rejected: %v", err)
	}
}

func TestPrintWizardPartsCountValidation(t *testing.T) {
	w := NewPrint(testCatalog())
	if err := w.SetPartsCount(0); err == nil {
		t.Fatal("expected zero parts rejected")
	}
	if err := w.SetPartsCount(-2); err == nil {
		t.Fatal("expected negative parts rejected")
	}
}
