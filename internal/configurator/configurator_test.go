package configurator

import (
	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
)

func part(id, name string, price float64) domain.Part {
	return domain.Part{ID: id, Name: name, Price: price, Active: true}
}

func testCatalog() *catalog.Model {
	doc := domain.CatalogDocument{
		Services: map[string]domain.DeviceService{
			"phone": {
				Name: "Phone repairs",
				Brands: []domain.Brand{
					{ID: "apple", Name: "Apple", Active: true, Models: []domain.Model{
						{ID: "iphone-15", Name: "iPhone 15", Active: true},
					}},
				},
				Repairs: []domain.Repair{
					{ID: "screen", Name: "Screen replacement", Price: 89, Active: true},
					{ID: "battery", Name: "Battery swap", Price: 49, Active: true},
				},
			},
		},
		CustomBuilds: map[string][]domain.Part{
			"cpu-intel":         {part("i5", "Core i5-14600K", 289)},
			"cpu-amd":           {part("r5", "Ryzen 5 7600", 249)},
			"motherboard-intel": {part("z790", "MSI Z790", 139)},
			"motherboard-amd":   {part("b650", "ASUS B650", 129)},
			"ram":               {part("ddr5-32", "32GB DDR5", 79)},
			"storage":           {part("nvme-1tb", "1TB NVMe", 89)},
			"psu":               {part("psu-750", "750W Gold", 99)},
			"case":              {part("mesh-case", "Mesh Case", 79)},
			"cooler":            {part("aio-240", "240mm AIO", 89)},
			"rack":              {part("rack-2u", "2U Rack Chassis", 159)},
			"build-status":      {part("assembled", "Assembled & tested", 0)},
			"os-option":         {part("debian", "Debian 12", 0)},
			"install-option":    {part("preinstall", "Preinstalled", 0)},
			"ha-brand": {
				part("raspberry", "Raspberry Pi", 0),
				part("nvidia", "NVIDIA Jetson", 0),
			},
			"ha-model-raspberry":        {part("rpi5", "Raspberry Pi 5", 85)},
			"ha-model-nvidia":           {part("orin-nano", "Jetson Orin Nano", 499)},
			"ha-ram-raspberry":          {part("rpi-8gb", "8GB", 20)},
			"ha-ram-nvidia":             {part("jetson-16gb", "16GB", 0)},
			"ha-storage-type-raspberry": {part("sd-card", "SD card", 0), part("m2-ssd", "M.2 SSD", 0)},
			"ha-storage-type-nvidia":    {part("m2-ssd", "M.2 SSD", 0)},
			"ha-storage-size-sd-card":   {part("sd-64", "64GB SD", 15), part("sd-128", "128GB SD", 25)},
			"ha-storage-size-m2-ssd":    {part("ssd-256", "256GB SSD", 39), part("ssd-512", "512GB SSD", 59)},
			"ha-case":                   {part("argon", "Argon ONE", 35)},
			"ha-switch":                 {part("sw-8p", "8-port switch", 49)},
			"ha-install-os":             {part("haos", "Home Assistant OS", 0)},
			"ha-cluster":                {part("no-cluster", "Single node", 0), part("cluster-3", "3-node cluster", 0)},
		},
		Printing: domain.PrintingCatalog{
			Printers: []domain.Part{
				part("mk4", "Prusa MK4", 0),
				{ID: "xl", Name: "Prusa XL", Active: true, Multicolor: true},
			},
			Filaments: []domain.Part{part("pla", "PLA", 5), part("petg", "PETG", 7)},
			Colors:    []domain.Part{part("black", "Black", 0), part("red", "Red", 0), part("blue", "Blue", 0), part("white", "White", 0)},
			Strengths: []domain.Part{part("standard", "Standard 20%", 0), part("strong", "Strong 50%", 3)},
			OtherItems: []domain.Part{
				part("benchy", "Benchy", 9),
			},
		},
		Checkout: domain.CheckoutConfig{
			DeliveryFees:     map[string]float64{domain.ServicePickup: 15},
			OnlinePaymentFee: 9,
		},
	}
	return catalog.Load(doc)
}
