package configurator

import (
	"errors"
	"reflect"
	"testing"

	"techfix-shop/internal/domain"
)

func fillCustomBuild(t *testing.T, w *BuildWizard) {
	t.Helper()
	steps := map[string]string{
		StepCPUBrand:    CPUBrandIntel,
		StepCPU:         "i5",
		StepMotherboard: "z790",
		StepRAM:         "ddr5-32",
		StepStorage:     "nvme-1tb",
		StepPSU:         "psu-750",
		StepCase:        "mesh-case",
		StepCooler:      "aio-240",
	}
	for _, step := range w.RequiredSteps() {
		if err := w.Set(step, steps[step]); err != nil {
			t.Fatalf("set %s: %v", step, err)
		}
	}
}

func TestCustomBuildEndToEnd(t *testing.T) {
	w := NewBuild(testCatalog())
	if err := w.SelectBuildType(BuildTypeCustom); err != nil {
		t.Fatalf("select build type: %v", err)
	}
	fillCustomBuild(t, w)

	// 289 + 139 + 79 + 89 + 99 + 79 + 89
	if got := w.Price(); got != 863 {
		t.Fatalf("price = %v, want 863", got)
	}

	item, err := w.AddToCart()
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if item.Kind != domain.ItemKindBuild || item.Price != 863 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Meta[StepBuildType] != BuildTypeCustom {
		t.Fatalf("meta missing build type: %+v", item.Meta)
	}

	w.Reset()
	if st := w.State(); st.BuildType != "" || len(st.Selections) != 0 {
		t.Fatalf("wizard not reset: %+v", st)
	}
}

func TestBuildTypeSwitchClearsServerFields(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)
	if err := w.Set(StepHABrand, HABrandRaspberry); err != nil {
		t.Fatalf("set ha brand: %v", err)
	}
	if err := w.Set(StepHAModel, "rpi5"); err != nil {
		t.Fatalf("set ha model: %v", err)
	}

	if err := w.SelectBuildType(BuildTypeCustom); err != nil {
		t.Fatalf("switch to custom: %v", err)
	}
	st := w.State()
	if len(st.Selections) != 0 || st.ServerType != "" {
		t.Fatalf("server fields survived the branch switch: %+v", st)
	}
	want := []string{StepCPUBrand, StepCPU, StepMotherboard, StepRAM, StepStorage, StepPSU, StepCase, StepCooler}
	if !reflect.DeepEqual(st.Required, want) {
		t.Fatalf("required steps = %v, want %v", st.Required, want)
	}
}

func TestServerStandardRequiredSteps(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerStandard)
	want := []string{StepCPUBrand, StepCPU, StepMotherboard, StepRAM, StepStorage, StepPSU, StepRack, StepBuildStatus, StepOSOption, StepInstallOption}
	if got := w.RequiredSteps(); !reflect.DeepEqual(got, want) {
		t.Fatalf("required = %v, want %v", got, want)
	}

	// The status/os/install triple is concurrent: any order is accepted.
	if err := w.Set(StepInstallOption, "preinstall"); err != nil {
		t.Fatalf("install option first: %v", err)
	}
	if err := w.Set(StepBuildStatus, "assembled"); err != nil {
		t.Fatalf("build status: %v", err)
	}
	if err := w.Set(StepOSOption, "debian"); err != nil {
		t.Fatalf("os option: %v", err)
	}
}

func TestCPUBrandChangeClearsDependentParts(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeCustom)
	_ = w.Set(StepCPUBrand, CPUBrandIntel)
	_ = w.Set(StepCPU, "i5")
	_ = w.Set(StepMotherboard, "z790")
	_ = w.Set(StepRAM, "ddr5-32")

	if err := w.Set(StepCPUBrand, CPUBrandAMD); err != nil {
		t.Fatalf("switch cpu brand: %v", err)
	}
	sel := w.State().Selections
	if sel[StepCPU] != "" || sel[StepMotherboard] != "" {
		t.Fatalf("brand-qualified parts survived brand switch: %+v", sel)
	}
	if sel[StepRAM] != "ddr5-32" {
		t.Fatalf("brand-independent part lost: %+v", sel)
	}
	// Intel parts are rejected against the AMD catalogs.
	if err := w.Set(StepCPU, "i5"); err == nil {
		t.Fatal("expected intel cpu to be rejected on amd branch")
	}
	if err := w.Set(StepCPU, "r5"); err != nil {
		t.Fatalf("amd cpu: %v", err)
	}
}

func TestHomeAssistantBranch(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)

	if err := w.Set(StepHAModel, "rpi5"); err == nil {
		t.Fatal("expected model selection to require a brand")
	}
	if err := w.Set(StepHABrand, HABrandRaspberry); err != nil {
		t.Fatalf("ha brand: %v", err)
	}

	// Raspberry builds ask the cluster question.
	req := w.RequiredSteps()
	if req[len(req)-1] != StepHACluster {
		t.Fatalf("expected cluster step for raspberry, got %v", req)
	}

	steps := [][2]string{
		{StepHAType, HATypeCase},
		{StepHAModel, "rpi5"},
		{StepHARAM, "rpi-8gb"},
		{StepHAStorageType, "sd-card"},
		{StepHAStorageSize, "sd-64"},
		{StepHACaseOrRack, "argon"},
		{StepHASwitch, "sw-8p"},
		{StepHAInstallOS, "haos"},
		{StepHACluster, "no-cluster"},
	}
	for _, s := range steps {
		if err := w.Set(s[0], s[1]); err != nil {
			t.Fatalf("set %s: %v", s[0], err)
		}
	}

	// 85 (model) + 20 (ram) + 15 (sd-64) + 35 (case) + 49 (switch)
	if got := w.Price(); got != 204 {
		t.Fatalf("price = %v, want 204", got)
	}
	item, err := w.AddToCart()
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if item.Title != "Home Assistant server" {
		t.Fatalf("title = %q", item.Title)
	}
}

func TestHomeAssistantClusterOnlyForRaspberry(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)
	_ = w.Set(StepHABrand, HABrandNvidia)

	for _, step := range w.RequiredSteps() {
		if step == StepHACluster {
			t.Fatal("cluster must not be required for nvidia")
		}
	}
	if err := w.Set(StepHACluster, "no-cluster"); err == nil {
		t.Fatal("expected cluster selection to be rejected for nvidia")
	}
}

func TestHomeAssistantBrandChangeClearsDownstream(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)
	_ = w.Set(StepHABrand, HABrandRaspberry)
	_ = w.Set(StepHAType, HATypeCase)
	_ = w.Set(StepHAModel, "rpi5")
	_ = w.Set(StepHARAM, "rpi-8gb")

	if err := w.Set(StepHABrand, HABrandNvidia); err != nil {
		t.Fatalf("switch brand: %v", err)
	}
	sel := w.State().Selections
	if len(sel) != 1 || sel[StepHABrand] != HABrandNvidia {
		t.Fatalf("expected only the brand to survive, got %+v", sel)
	}
	// Raspberry model rejected against the nvidia catalog.
	if err := w.Set(StepHAModel, "rpi5"); err == nil {
		t.Fatal("expected raspberry model rejected on nvidia branch")
	}
}

func TestHAStorageSizeSetsAreDisjointAndClear(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)
	_ = w.Set(StepHABrand, HABrandRaspberry)
	_ = w.Set(StepHAStorageType, "sd-card")
	if err := w.Set(StepHAStorageSize, "sd-64"); err != nil {
		t.Fatalf("sd size: %v", err)
	}
	// SSD sizes are not selectable while the type is sd-card.
	if err := w.Set(StepHAStorageSize, "ssd-256"); err == nil {
		t.Fatal("expected ssd size rejected for sd-card type")
	}

	if err := w.Set(StepHAStorageType, "m2-ssd"); err != nil {
		t.Fatalf("switch storage type: %v", err)
	}
	if got := w.State().Selections[StepHAStorageSize]; got != "" {
		t.Fatalf("previous size survived storage-type switch: %q", got)
	}
	if err := w.Set(StepHAStorageSize, "sd-64"); err == nil {
		t.Fatal("expected sd size rejected for m2-ssd type")
	}
	if err := w.Set(StepHAStorageSize, "ssd-256"); err != nil {
		t.Fatalf("ssd size: %v", err)
	}
}

func TestHACaseOrRackFollowsType(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_ = w.SelectServerType(ServerHomeAssistant)
	_ = w.Set(StepHABrand, HABrandRaspberry)

	if err := w.Set(StepHACaseOrRack, "argon"); err == nil {
		t.Fatal("expected enclosure to require a type")
	}
	_ = w.Set(StepHAType, HATypeRack)
	if err := w.Set(StepHACaseOrRack, "argon"); err == nil {
		t.Fatal("expected case enclosure rejected for rack type")
	}
	if err := w.Set(StepHACaseOrRack, "rack-2u"); err != nil {
		t.Fatalf("rack enclosure: %v", err)
	}

	_ = w.Set(StepHAType, HATypeCase)
	if got := w.State().Selections[StepHACaseOrRack]; got != "" {
		t.Fatalf("enclosure survived type switch: %q", got)
	}
}

func TestAddToCartRejectsIncompleteBuild(t *testing.T) {
	w := NewBuild(testCatalog())
	if _, err := w.AddToCart(); err == nil {
		t.Fatal("expected rejection with no build type")
	}

	_ = w.SelectBuildType(BuildTypeCustom)
	_ = w.Set(StepCPUBrand, CPUBrandIntel)
	_ = w.Set(StepCPU, "i5")
	_, err := w.AddToCart()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != StepMotherboard {
		t.Fatalf("expected motherboard named as missing, got %v", err)
	}
	// The partial selection survives the rejection.
	if got := w.State().Selections[StepCPU]; got != "i5" {
		t.Fatalf("selection lost on rejection: %q", got)
	}
}

func TestServerBranchWithoutServerTypeRejected(t *testing.T) {
	w := NewBuild(testCatalog())
	_ = w.SelectBuildType(BuildTypeServer)
	_, err := w.AddToCart()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != StepServerType {
		t.Fatalf("expected serverType named, got %v", err)
	}
	if err := w.Set(StepCPUBrand, CPUBrandIntel); err == nil {
		t.Fatal("expected step rejected before server type is chosen")
	}
}
