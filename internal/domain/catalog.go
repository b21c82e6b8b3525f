package domain

import (
	"encoding/json"
	"time"
)

// CatalogDocument is the single shop configuration document. It is stored as
// one versioned row and always read/written wholesale so cross-references
// between sections stay consistent.
type CatalogDocument struct {
	Services     map[string]DeviceService `json:"services"`
	CustomBuilds map[string][]Part        `json:"customBuilds"`
	Printing     PrintingCatalog          `json:"printing"`
	Checkout     CheckoutConfig           `json:"checkout"`
	Announcement Announcement             `json:"announcement"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// DeviceService groups everything offered for one device kind (phone,
// tablet, laptop, ...): its brands, their models and the repair menu.
type DeviceService struct {
	Name    string   `json:"name"`
	Icon    string   `json:"icon,omitempty"`
	Brands  []Brand  `json:"brands"`
	Repairs []Repair `json:"repairs"`
}

type Brand struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	Models []Model `json:"models"`
}

type Model struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Repair struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// Part is a selectable catalog entry for custom builds and 3D printing.
// Multicolor is meaningful only for printers.
type Part struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Active     bool    `json:"active"`
	Multicolor bool    `json:"multicolor,omitempty"`
}

// Catalog entries are active unless switched off: a payload that never
// mentions the flag must not hide the entry from customers. The custom
// decoders below turn an omitted "active" into true at every JSON boundary
// (admin edits, whole-document PUT, stored documents).

func (b *Brand) UnmarshalJSON(data []byte) error {
	type plain Brand
	aux := struct {
		Active *bool `json:"active"`
		*plain
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Active = aux.Active == nil || *aux.Active
	return nil
}

func (m *Model) UnmarshalJSON(data []byte) error {
	type plain Model
	aux := struct {
		Active *bool `json:"active"`
		*plain
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Active = aux.Active == nil || *aux.Active
	return nil
}

func (r *Repair) UnmarshalJSON(data []byte) error {
	type plain Repair
	aux := struct {
		Active *bool `json:"active"`
		*plain
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Active = aux.Active == nil || *aux.Active
	return nil
}

func (p *Part) UnmarshalJSON(data []byte) error {
	type plain Part
	aux := struct {
		Active *bool `json:"active"`
		*plain
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Active = aux.Active == nil || *aux.Active
	return nil
}

type PrintingCatalog struct {
	Printers   []Part `json:"printers"`
	Filaments  []Part `json:"filaments"`
	Colors     []Part `json:"colors"`
	Strengths  []Part `json:"strengths"`
	OtherItems []Part `json:"otherItems"`
}

// CheckoutConfig is the admin-configured fee schedule. DeliveryFees is keyed
// by service type; service types missing from the map cost nothing.
type CheckoutConfig struct {
	DeliveryFees     map[string]float64 `json:"deliveryFees"`
	OnlinePaymentFee float64            `json:"onlinePaymentFee"`
	PacketaAPIKey    string             `json:"packetaApiKey,omitempty"`
	TermsAddendum    string             `json:"termsAddendum,omitempty"`
}

type Announcement struct {
	Active bool   `json:"active"`
	Text   string `json:"text"`
}

// Custom-build category keys. Brand-dependent categories are derived with the
// helper functions below rather than spelled out at call sites.
const (
	CategoryRAM           = "ram"
	CategoryStorage       = "storage"
	CategoryPSU           = "psu"
	CategoryCase          = "case"
	CategoryCooler        = "cooler"
	CategoryRack          = "rack"
	CategoryBuildStatus   = "build-status"
	CategoryOSOption      = "os-option"
	CategoryInstallOption = "install-option"
	CategoryHABrand       = "ha-brand"
	CategoryHACase        = "ha-case"
	CategoryHASwitch      = "ha-switch"
	CategoryHAInstallOS   = "ha-install-os"
	CategoryHACluster     = "ha-cluster"
)

func CPUCategory(cpuBrand string) string         { return "cpu-" + cpuBrand }
func MotherboardCategory(cpuBrand string) string { return "motherboard-" + cpuBrand }
func HAModelCategory(haBrand string) string      { return "ha-model-" + haBrand }
func HARAMCategory(haBrand string) string        { return "ha-ram-" + haBrand }
func HAStorageTypeCategory(haBrand string) string {
	return "ha-storage-type-" + haBrand
}
func HAStorageSizeCategory(storageType string) string {
	return "ha-storage-size-" + storageType
}
