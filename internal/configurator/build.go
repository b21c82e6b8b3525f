package configurator

import (
	"strings"
	"time"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
	"techfix-shop/internal/pricing"
)

// Build wizard branch values.
const (
	BuildTypeCustom = "custom"
	BuildTypeServer = "server"

	ServerStandard      = "standard"
	ServerHomeAssistant = "home-assistant"

	CPUBrandIntel = "intel"
	CPUBrandAMD   = "amd"

	HABrandRaspberry = "raspberry"
	HABrandNvidia    = "nvidia"

	HATypeCase = "case"
	HATypeRack = "rack"
)

// Build wizard step names. These are the field keys used by Set, State and
// validation messages.
const (
	StepBuildType     = "buildType"
	StepServerType    = "serverType"
	StepCPUBrand      = "cpuBrand"
	StepCPU           = "cpu"
	StepMotherboard   = "motherboard"
	StepRAM           = "ram"
	StepStorage       = "storage"
	StepPSU           = "psu"
	StepCase          = "case"
	StepCooler        = "cooler"
	StepRack          = "rack"
	StepBuildStatus   = "buildStatus"
	StepOSOption      = "osOption"
	StepInstallOption = "installOption"
	StepHABrand       = "haBrand"
	StepHAType        = "haType"
	StepHAModel       = "haModel"
	StepHARAM         = "haRam"
	StepHAStorageType = "haStorageType"
	StepHAStorageSize = "haStorageSize"
	StepHACaseOrRack  = "haCaseOrRack"
	StepHASwitch      = "haSwitch"
	StepHAInstallOS   = "haInstallOs"
	StepHACluster     = "haCluster"
)

// BuildPlan is the branch-specific selection record. Exactly one variant is
// live at a time; switching branches replaces the whole plan, which is what
// makes "clear every downstream field" automatic.
type BuildPlan interface {
	isPlan()
}

// CustomPlan is the desktop-PC branch.
type CustomPlan struct {
	CPUBrand    string
	CPU         string
	Motherboard string
	RAM         string
	Storage     string
	PSU         string
	Case        string
	Cooler      string
}

// ServerStandardPlan is the rack-server branch. BuildStatus, OSOption and
// InstallOption form one concurrent step and may be answered in any order.
type ServerStandardPlan struct {
	CPUBrand      string
	CPU           string
	Motherboard   string
	RAM           string
	Storage       string
	PSU           string
	Rack          string
	BuildStatus   string
	OSOption      string
	InstallOption string
}

// HomeAssistantPlan is the Home-Assistant appliance branch. The option sets
// of Model/RAM/StorageType depend on Brand, StorageSize on StorageType and
// CaseOrRack on Type. Cluster is asked only for raspberry builds.
type HomeAssistantPlan struct {
	Brand       string
	Type        string
	Model       string
	RAM         string
	StorageType string
	StorageSize string
	CaseOrRack  string
	Switch      string
	InstallOS   string
	Cluster     string
}

func (*CustomPlan) isPlan()         {}
func (*ServerStandardPlan) isPlan() {}
func (*HomeAssistantPlan) isPlan()  {}

// BuildWizard drives the custom-build configurator. The root branching
// field is the build type; server builds branch again on server type.
type BuildWizard struct {
	cat        *catalog.Model
	buildType  string
	serverType string
	plan       BuildPlan
}

// NewBuild returns an empty build wizard over the given catalog.
func NewBuild(cat *catalog.Model) *BuildWizard {
	return &BuildWizard{cat: cat}
}

// BuildState is a snapshot of the wizard for clients: chosen branch fields,
// the per-step selections, the steps the resolved branch requires and the
// running price of the priced steps.
type BuildState struct {
	BuildType  string            `json:"buildType,omitempty"`
	ServerType string            `json:"serverType,omitempty"`
	Selections map[string]string `json:"selections"`
	Required   []string          `json:"required"`
	Price      float64           `json:"price"`
}

// Reset clears the wizard back to the build-type question.
func (w *BuildWizard) Reset() {
	w.buildType, w.serverType, w.plan = "", "", nil
}

// SelectBuildType picks custom vs server. Changing it discards every
// downstream selection.
func (w *BuildWizard) SelectBuildType(t string) error {
	switch t {
	case BuildTypeCustom:
		w.buildType = t
		w.serverType = ""
		w.plan = &CustomPlan{}
	case BuildTypeServer:
		w.buildType = t
		w.serverType = ""
		w.plan = nil
	default:
		return domain.Invalid(StepBuildType, "must be custom or server")
	}
	return nil
}

// SelectServerType picks standard vs home-assistant for server builds.
// Changing it discards every downstream selection.
func (w *BuildWizard) SelectServerType(t string) error {
	if w.buildType != BuildTypeServer {
		return domain.Invalid(StepServerType, "select the server build type first")
	}
	switch t {
	case ServerStandard:
		w.serverType = t
		w.plan = &ServerStandardPlan{}
	case ServerHomeAssistant:
		w.serverType = t
		w.plan = &HomeAssistantPlan{}
	default:
		return domain.Invalid(StepServerType, "must be standard or home-assistant")
	}
	return nil
}

// Set answers one step of the resolved branch. Branch steps (buildType,
// serverType) have their own methods; everything else goes through here.
func (w *BuildWizard) Set(step, id string) error {
	switch step {
	case StepBuildType:
		return w.SelectBuildType(id)
	case StepServerType:
		return w.SelectServerType(id)
	}
	switch plan := w.plan.(type) {
	case *CustomPlan:
		return w.setCustom(plan, step, id)
	case *ServerStandardPlan:
		return w.setServerStandard(plan, step, id)
	case *HomeAssistantPlan:
		return w.setHomeAssistant(plan, step, id)
	default:
		return domain.Invalid(step, "select a build type first")
	}
}

func (w *BuildWizard) setCustom(p *CustomPlan, step, id string) error {
	switch step {
	case StepCPUBrand:
		if err := validCPUBrand(id); err != nil {
			return err
		}
		if p.CPUBrand != id {
			p.CPU, p.Motherboard = "", ""
		}
		p.CPUBrand = id
	case StepCPU:
		return w.setCPU(&p.CPUBrand, &p.CPU, id)
	case StepMotherboard:
		return w.setMotherboard(&p.CPUBrand, &p.Motherboard, id)
	case StepRAM:
		return w.setPart(domain.CategoryRAM, step, &p.RAM, id)
	case StepStorage:
		return w.setPart(domain.CategoryStorage, step, &p.Storage, id)
	case StepPSU:
		return w.setPart(domain.CategoryPSU, step, &p.PSU, id)
	case StepCase:
		return w.setPart(domain.CategoryCase, step, &p.Case, id)
	case StepCooler:
		return w.setPart(domain.CategoryCooler, step, &p.Cooler, id)
	default:
		return domain.Invalid(step, "not part of a custom build")
	}
	return nil
}

func (w *BuildWizard) setServerStandard(p *ServerStandardPlan, step, id string) error {
	switch step {
	case StepCPUBrand:
		if err := validCPUBrand(id); err != nil {
			return err
		}
		if p.CPUBrand != id {
			p.CPU, p.Motherboard = "", ""
		}
		p.CPUBrand = id
	case StepCPU:
		return w.setCPU(&p.CPUBrand, &p.CPU, id)
	case StepMotherboard:
		return w.setMotherboard(&p.CPUBrand, &p.Motherboard, id)
	case StepRAM:
		return w.setPart(domain.CategoryRAM, step, &p.RAM, id)
	case StepStorage:
		return w.setPart(domain.CategoryStorage, step, &p.Storage, id)
	case StepPSU:
		return w.setPart(domain.CategoryPSU, step, &p.PSU, id)
	case StepRack:
		return w.setPart(domain.CategoryRack, step, &p.Rack, id)
	case StepBuildStatus:
		return w.setPart(domain.CategoryBuildStatus, step, &p.BuildStatus, id)
	case StepOSOption:
		return w.setPart(domain.CategoryOSOption, step, &p.OSOption, id)
	case StepInstallOption:
		return w.setPart(domain.CategoryInstallOption, step, &p.InstallOption, id)
	default:
		return domain.Invalid(step, "not part of a standard server build")
	}
	return nil
}

func (w *BuildWizard) setHomeAssistant(p *HomeAssistantPlan, step, id string) error {
	switch step {
	case StepHABrand:
		if _, ok := w.cat.Part(domain.CategoryHABrand, id); !ok {
			return domain.Invalid(step, "unknown option")
		}
		if p.Brand != id {
			// Brand drives the model/ram/storage catalogs; everything
			// downstream is stale once it changes.
			*p = HomeAssistantPlan{Brand: id}
		}
		p.Brand = id
	case StepHAType:
		if id != HATypeCase && id != HATypeRack {
			return domain.Invalid(step, "must be case or rack")
		}
		if p.Type != id {
			p.CaseOrRack = ""
		}
		p.Type = id
	case StepHAModel:
		if p.Brand == "" {
			return domain.Invalid(step, "select a brand first")
		}
		return w.setPart(domain.HAModelCategory(p.Brand), step, &p.Model, id)
	case StepHARAM:
		if p.Brand == "" {
			return domain.Invalid(step, "select a brand first")
		}
		return w.setPart(domain.HARAMCategory(p.Brand), step, &p.RAM, id)
	case StepHAStorageType:
		if p.Brand == "" {
			return domain.Invalid(step, "select a brand first")
		}
		if _, ok := w.cat.Part(domain.HAStorageTypeCategory(p.Brand), id); !ok {
			return domain.Invalid(step, "unknown option")
		}
		if p.StorageType != id {
			p.StorageSize = ""
		}
		p.StorageType = id
	case StepHAStorageSize:
		if p.StorageType == "" {
			return domain.Invalid(step, "select a storage type first")
		}
		return w.setPart(domain.HAStorageSizeCategory(p.StorageType), step, &p.StorageSize, id)
	case StepHACaseOrRack:
		if p.Type == "" {
			return domain.Invalid(step, "select case or rack first")
		}
		return w.setPart(haEnclosureCategory(p.Type), step, &p.CaseOrRack, id)
	case StepHASwitch:
		return w.setPart(domain.CategoryHASwitch, step, &p.Switch, id)
	case StepHAInstallOS:
		return w.setPart(domain.CategoryHAInstallOS, step, &p.InstallOS, id)
	case StepHACluster:
		if p.Brand != HABrandRaspberry {
			return domain.Invalid(step, "only asked for raspberry builds")
		}
		return w.setPart(domain.CategoryHACluster, step, &p.Cluster, id)
	default:
		return domain.Invalid(step, "not part of a home-assistant build")
	}
	return nil
}

func (w *BuildWizard) setCPU(brand, field *string, id string) error {
	if *brand == "" {
		return domain.Invalid(StepCPU, "select a CPU brand first")
	}
	return w.setPart(domain.CPUCategory(*brand), StepCPU, field, id)
}

func (w *BuildWizard) setMotherboard(brand, field *string, id string) error {
	if *brand == "" {
		return domain.Invalid(StepMotherboard, "select a CPU brand first")
	}
	return w.setPart(domain.MotherboardCategory(*brand), StepMotherboard, field, id)
}

func (w *BuildWizard) setPart(category, step string, field *string, id string) error {
	if _, ok := w.cat.Part(category, id); !ok {
		return domain.Invalid(step, "unknown option")
	}
	*field = id
	return nil
}

func validCPUBrand(id string) error {
	if id != CPUBrandIntel && id != CPUBrandAMD {
		return domain.Invalid(StepCPUBrand, "must be intel or amd")
	}
	return nil
}

func haEnclosureCategory(haType string) string {
	if haType == HATypeRack {
		return domain.CategoryRack
	}
	return domain.CategoryHACase
}

// RequiredSteps lists every step the resolved branch needs before the
// terminal action is allowed, in presentation order.
func (w *BuildWizard) RequiredSteps() []string {
	switch plan := w.plan.(type) {
	case *CustomPlan:
		return []string{StepCPUBrand, StepCPU, StepMotherboard, StepRAM, StepStorage, StepPSU, StepCase, StepCooler}
	case *ServerStandardPlan:
		return []string{StepCPUBrand, StepCPU, StepMotherboard, StepRAM, StepStorage, StepPSU, StepRack, StepBuildStatus, StepOSOption, StepInstallOption}
	case *HomeAssistantPlan:
		steps := []string{StepHABrand, StepHAType, StepHAModel, StepHARAM, StepHAStorageType, StepHAStorageSize, StepHACaseOrRack, StepHASwitch, StepHAInstallOS}
		if plan.Brand == HABrandRaspberry {
			steps = append(steps, StepHACluster)
		}
		return steps
	default:
		if w.buildType == BuildTypeServer {
			return []string{StepServerType}
		}
		return []string{StepBuildType}
	}
}

// selections returns the answered steps of the live plan.
func (w *BuildWizard) selections() map[string]string {
	out := map[string]string{}
	put := func(step, v string) {
		if v != "" {
			out[step] = v
		}
	}
	switch p := w.plan.(type) {
	case *CustomPlan:
		put(StepCPUBrand, p.CPUBrand)
		put(StepCPU, p.CPU)
		put(StepMotherboard, p.Motherboard)
		put(StepRAM, p.RAM)
		put(StepStorage, p.Storage)
		put(StepPSU, p.PSU)
		put(StepCase, p.Case)
		put(StepCooler, p.Cooler)
	case *ServerStandardPlan:
		put(StepCPUBrand, p.CPUBrand)
		put(StepCPU, p.CPU)
		put(StepMotherboard, p.Motherboard)
		put(StepRAM, p.RAM)
		put(StepStorage, p.Storage)
		put(StepPSU, p.PSU)
		put(StepRack, p.Rack)
		put(StepBuildStatus, p.BuildStatus)
		put(StepOSOption, p.OSOption)
		put(StepInstallOption, p.InstallOption)
	case *HomeAssistantPlan:
		put(StepHABrand, p.Brand)
		put(StepHAType, p.Type)
		put(StepHAModel, p.Model)
		put(StepHARAM, p.RAM)
		put(StepHAStorageType, p.StorageType)
		put(StepHAStorageSize, p.StorageSize)
		put(StepHACaseOrRack, p.CaseOrRack)
		put(StepHASwitch, p.Switch)
		put(StepHAInstallOS, p.InstallOS)
		put(StepHACluster, p.Cluster)
	}
	return out
}

// pricedSteps maps each part-bearing step of the live plan to its catalog
// category. Selector steps (brands, statuses, OS choices) carry no price.
func (w *BuildWizard) pricedSteps() map[string]string {
	switch p := w.plan.(type) {
	case *CustomPlan:
		if p.CPUBrand == "" {
			return nil
		}
		return map[string]string{
			StepCPU:         domain.CPUCategory(p.CPUBrand),
			StepMotherboard: domain.MotherboardCategory(p.CPUBrand),
			StepRAM:         domain.CategoryRAM,
			StepStorage:     domain.CategoryStorage,
			StepPSU:         domain.CategoryPSU,
			StepCase:        domain.CategoryCase,
			StepCooler:      domain.CategoryCooler,
		}
	case *ServerStandardPlan:
		if p.CPUBrand == "" {
			return nil
		}
		return map[string]string{
			StepCPU:         domain.CPUCategory(p.CPUBrand),
			StepMotherboard: domain.MotherboardCategory(p.CPUBrand),
			StepRAM:         domain.CategoryRAM,
			StepStorage:     domain.CategoryStorage,
			StepPSU:         domain.CategoryPSU,
			StepRack:        domain.CategoryRack,
		}
	case *HomeAssistantPlan:
		out := map[string]string{
			StepHASwitch: domain.CategoryHASwitch,
		}
		if p.Brand != "" {
			out[StepHAModel] = domain.HAModelCategory(p.Brand)
			out[StepHARAM] = domain.HARAMCategory(p.Brand)
		}
		if p.StorageType != "" {
			out[StepHAStorageSize] = domain.HAStorageSizeCategory(p.StorageType)
		}
		if p.Type != "" {
			out[StepHACaseOrRack] = haEnclosureCategory(p.Type)
		}
		return out
	default:
		return nil
	}
}

// Price sums the part-bearing steps of the current selection. References to
// parts that have since left the catalog price as 0.
func (w *BuildWizard) Price() float64 {
	selections := w.selections()
	all := w.cat.WithInactive()
	var sum float64
	for step, category := range w.pricedSteps() {
		id := selections[step]
		if id == "" {
			continue
		}
		if part, ok := all.Part(category, id); ok {
			sum += pricing.Sanitize(part.Price)
		}
	}
	return pricing.Round(sum)
}

// State returns a client snapshot of the wizard.
func (w *BuildWizard) State() BuildState {
	return BuildState{
		BuildType:  w.buildType,
		ServerType: w.serverType,
		Selections: w.selections(),
		Required:   w.RequiredSteps(),
		Price:      w.Price(),
	}
}

// AddToCart is the terminal action. It refuses while any required step of
// the resolved branch is unanswered, naming the first missing step, and
// otherwise returns one cart item describing the whole build. The caller
// resets the wizard once the item is safely in the cart.
func (w *BuildWizard) AddToCart() (domain.CartItem, error) {
	if w.plan == nil {
		if w.buildType == BuildTypeServer {
			return domain.CartItem{}, domain.Required(StepServerType)
		}
		return domain.CartItem{}, domain.Required(StepBuildType)
	}
	selections := w.selections()
	for _, step := range w.RequiredSteps() {
		if selections[step] == "" {
			return domain.CartItem{}, domain.Required(step)
		}
	}

	item := domain.CartItem{
		Kind:        domain.ItemKindBuild,
		Title:       w.title(),
		Description: w.describe(selections),
		Price:       w.Price(),
		Meta:        selections,
		CreatedAt:   time.Now().UTC(),
	}
	item.Meta[StepBuildType] = w.buildType
	if w.serverType != "" {
		item.Meta[StepServerType] = w.serverType
	}
	return item, nil
}

func (w *BuildWizard) title() string {
	switch w.plan.(type) {
	case *ServerStandardPlan:
		return "Server build"
	case *HomeAssistantPlan:
		return "Home Assistant server"
	default:
		return "Custom PC build"
	}
}

// describe concatenates the resolved names of every answered step, priced
// selectors included, in required-step order.
func (w *BuildWizard) describe(selections map[string]string) string {
	categories := w.pricedSteps()
	var parts []string
	for _, step := range w.RequiredSteps() {
		id := selections[step]
		if id == "" {
			continue
		}
		category, priced := categories[step]
		if !priced {
			category = selectorCategory(step, w.plan)
		}
		if category == "" {
			parts = append(parts, id)
			continue
		}
		parts = append(parts, w.cat.ResolveLabel("builds/"+category, id))
	}
	return strings.Join(parts, ", ")
}

// selectorCategory returns the catalog category of a non-priced selector
// step, or "" for fixed enums like cpuBrand and haType.
func selectorCategory(step string, plan BuildPlan) string {
	switch step {
	case StepBuildStatus:
		return domain.CategoryBuildStatus
	case StepOSOption:
		return domain.CategoryOSOption
	case StepInstallOption:
		return domain.CategoryInstallOption
	case StepHABrand:
		return domain.CategoryHABrand
	case StepHAInstallOS:
		return domain.CategoryHAInstallOS
	case StepHACluster:
		return domain.CategoryHACluster
	case StepHAStorageType:
		if p, ok := plan.(*HomeAssistantPlan); ok && p.Brand != "" {
			return domain.HAStorageTypeCategory(p.Brand)
		}
	}
	return ""
}
