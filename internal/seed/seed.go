package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"techfix-shop/internal/domain"
)

// Apply writes a demo catalog and an admin account for manual testing. It is
// idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := upsertCatalog(ctx, pool, demoCatalog()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := ensureAdmin(ctx, pool, "admin@techfix.local", "Adm1nPassword"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func upsertCatalog(ctx context.Context, pool *pgxpool.Pool, doc domain.CatalogDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO catalog (id, doc)
VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
`
	_, err = pool.Exec(ctx, q, payload)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, role)
VALUES ($1, $2, 'Shop', 'Admin', $3)
ON CONFLICT DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed), domain.RoleAdmin)
	return err
}

func demoCatalog() domain.CatalogDocument {
	return domain.CatalogDocument{
		Services: map[string]domain.DeviceService{
			"phone": {
				Name: "Phones",
				Icon: "smartphone",
				Brands: []domain.Brand{
					{ID: "apple", Name: "Apple", Active: true, Models: []domain.Model{
						{ID: "iphone-15", Name: "iPhone 15", Active: true},
						{ID: "iphone-14", Name: "iPhone 14", Active: true},
					}},
					{ID: "samsung", Name: "Samsung", Active: true, Models: []domain.Model{
						{ID: "galaxy-s24", Name: "Galaxy S24", Active: true},
					}},
				},
				Repairs: []domain.Repair{
					{ID: "screen", Name: "Screen replacement", Price: 89, Active: true},
					{ID: "battery", Name: "Battery replacement", Price: 49, Active: true},
					{ID: "charging-port", Name: "Charging port repair", Price: 39, Active: true},
				},
			},
			"laptop": {
				Name: "Laptops",
				Icon: "laptop",
				Brands: []domain.Brand{
					{ID: "lenovo", Name: "Lenovo", Active: true, Models: []domain.Model{
						{ID: "thinkpad-t14", Name: "ThinkPad T14", Active: true},
					}},
				},
				Repairs: []domain.Repair{
					{ID: "keyboard", Name: "Keyboard replacement", Price: 59, Active: true},
					{ID: "thermal", Name: "Thermal paste and cleaning", Price: 35, Active: true},
				},
			},
		},
		CustomBuilds: map[string][]domain.Part{
			domain.CPUCategory("intel"): {
				{ID: "i5-14600k", Name: "Intel Core i5-14600K", Price: 289, Active: true},
				{ID: "i7-14700k", Name: "Intel Core i7-14700K", Price: 409, Active: true},
			},
			domain.CPUCategory("amd"): {
				{ID: "r5-7600x", Name: "AMD Ryzen 5 7600X", Price: 229, Active: true},
				{ID: "r7-7800x3d", Name: "AMD Ryzen 7 7800X3D", Price: 379, Active: true},
			},
			domain.MotherboardCategory("intel"): {
				{ID: "z790-ace", Name: "MSI Z790 Ace", Price: 329, Active: true},
			},
			domain.MotherboardCategory("amd"): {
				{ID: "b650-tomahawk", Name: "MSI B650 Tomahawk", Price: 199, Active: true},
			},
			domain.CategoryRAM: {
				{ID: "ddr5-32", Name: "32 GB DDR5-6000", Price: 109, Active: true},
			},
			domain.CategoryStorage: {
				{ID: "nvme-1tb", Name: "1 TB NVMe SSD", Price: 79, Active: true},
			},
			domain.CategoryPSU: {
				{ID: "psu-750", Name: "750 W Gold PSU", Price: 99, Active: true},
			},
			domain.CategoryCase: {
				{ID: "mesh-case", Name: "Airflow mesh case", Price: 79, Active: true},
			},
			domain.CategoryCooler: {
				{ID: "aio-240", Name: "240 mm AIO cooler", Price: 89, Active: true},
			},
			domain.CategoryRack: {
				{ID: "rack-2u", Name: "2U rack chassis", Price: 159, Active: true},
			},
			domain.CategoryBuildStatus: {
				{ID: "assembled", Name: "Assembled and tested", Active: true},
				{ID: "parts-only", Name: "Parts only", Active: true},
			},
			domain.CategoryOSOption: {
				{ID: "debian", Name: "Debian", Active: true},
				{ID: "ubuntu-server", Name: "Ubuntu Server", Active: true},
				{ID: "no-os", Name: "No operating system", Active: true},
			},
			domain.CategoryInstallOption: {
				{ID: "preinstall", Name: "Preinstalled and configured", Active: true},
				{ID: "media-only", Name: "Installation media only", Active: true},
			},
			domain.CategoryHABrand: {
				{ID: "raspberry", Name: "Raspberry Pi", Active: true},
				{ID: "nvidia", Name: "NVIDIA Jetson", Active: true},
			},
			domain.HAModelCategory("raspberry"): {
				{ID: "rpi5", Name: "Raspberry Pi 5", Price: 85, Active: true},
			},
			domain.HAModelCategory("nvidia"): {
				{ID: "jetson-nano", Name: "Jetson Orin Nano", Price: 249, Active: true},
			},
			domain.HARAMCategory("raspberry"): {
				{ID: "rpi-8gb", Name: "8 GB RAM", Price: 20, Active: true},
			},
			domain.HARAMCategory("nvidia"): {
				{ID: "jetson-8gb", Name: "8 GB RAM", Active: true},
			},
			domain.HAStorageTypeCategory("raspberry"): {
				{ID: "sd-card", Name: "SD card", Active: true},
				{ID: "m2-ssd", Name: "M.2 SSD", Active: true},
			},
			domain.HAStorageTypeCategory("nvidia"): {
				{ID: "m2-ssd", Name: "M.2 SSD", Active: true},
			},
			domain.HAStorageSizeCategory("sd-card"): {
				{ID: "sd-64", Name: "64 GB", Price: 15, Active: true},
			},
			domain.HAStorageSizeCategory("m2-ssd"): {
				{ID: "ssd-256", Name: "256 GB", Price: 39, Active: true},
			},
			domain.CategoryHACase: {
				{ID: "argon", Name: "Argon ONE case", Price: 35, Active: true},
			},
			domain.CategoryHASwitch: {
				{ID: "sw-8p", Name: "8-port gigabit switch", Price: 49, Active: true},
				{ID: "no-switch", Name: "No switch", Active: true},
			},
			domain.CategoryHAInstallOS: {
				{ID: "haos", Name: "Home Assistant OS", Active: true},
				{ID: "supervised", Name: "Supervised on Debian", Active: true},
			},
			domain.CategoryHACluster: {
				{ID: "no-cluster", Name: "Single node", Active: true},
				{ID: "cluster-3", Name: "3-node cluster", Price: 180, Active: true},
			},
		},
		Printing: domain.PrintingCatalog{
			Printers: []domain.Part{
				{ID: "mk4", Name: "Prusa MK4", Active: true},
				{ID: "xl", Name: "Prusa XL", Active: true, Multicolor: true},
			},
			Filaments: []domain.Part{
				{ID: "pla", Name: "PLA", Price: 5, Active: true},
				{ID: "petg", Name: "PETG", Price: 7, Active: true},
			},
			Colors: []domain.Part{
				{ID: "black", Name: "Black", Active: true},
				{ID: "white", Name: "White", Active: true},
				{ID: "red", Name: "Red", Active: true},
				{ID: "blue", Name: "Blue", Active: true},
			},
			Strengths: []domain.Part{
				{ID: "standard", Name: "Standard (15% infill)", Active: true},
				{ID: "strong", Name: "Strong (40% infill)", Price: 3, Active: true},
			},
			OtherItems: []domain.Part{
				{ID: "headphone-stand", Name: "Headphone stand", Price: 12, Active: true},
				{ID: "cable-clip-set", Name: "Cable clip set", Price: 6, Active: true},
			},
		},
		Checkout: domain.CheckoutConfig{
			DeliveryFees: map[string]float64{
				domain.ServicePickup:     15,
				domain.ServiceZasilkovna: 9,
				domain.ServicePosta:      11,
				domain.ServiceDPD:        12,
				domain.ServicePPL:        12,
				domain.ServiceGLS:        12,
			},
			OnlinePaymentFee: 9,
		},
		Announcement: domain.Announcement{
			Active: true,
			Text:   "Summer opening hours: Mon-Fri 9:00-18:00.",
		},
	}
}
