// Package catalog exposes the catalog document to customers and lets staff
// edit its nested collections. Every edit is a read-modify-write of the
// whole document; consumers reload their catalog model wholesale afterwards.
package catalog

import (
	"context"
	"errors"
	"strings"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
	catalogrepo "techfix-shop/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Model loads the current document into a read model. A missing document
// (fresh install) yields an empty catalog rather than an error.
func (s *Service) Model(ctx context.Context) (*catalog.Model, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Load(*doc), nil
}

// Get returns the raw document, empty when none has been written yet.
func (s *Service) Get(ctx context.Context) (*domain.CatalogDocument, error) {
	doc, err := s.repo.Get(ctx)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.CatalogDocument{
			Services:     map[string]domain.DeviceService{},
			CustomBuilds: map[string][]domain.Part{},
		}, nil
	}
	return nil, err
}

// PublicView strips fields customers must not see: the locker-network API
// key stays server-side and inactive entries are not offered.
func (s *Service) PublicView(ctx context.Context) (*domain.CatalogDocument, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := *doc
	out.Checkout.PacketaAPIKey = ""
	out.Services = make(map[string]domain.DeviceService, len(doc.Services))
	for key, svc := range doc.Services {
		pub := svc
		pub.Brands = nil
		for _, b := range svc.Brands {
			if !b.Active {
				continue
			}
			bb := b
			bb.Models = nil
			for _, m := range b.Models {
				if m.Active {
					bb.Models = append(bb.Models, m)
				}
			}
			pub.Brands = append(pub.Brands, bb)
		}
		pub.Repairs = nil
		for _, r := range svc.Repairs {
			if r.Active {
				pub.Repairs = append(pub.Repairs, r)
			}
		}
		out.Services[key] = pub
	}
	out.CustomBuilds = make(map[string][]domain.Part, len(doc.CustomBuilds))
	for key, parts := range doc.CustomBuilds {
		out.CustomBuilds[key] = activeParts(parts)
	}
	out.Printing = domain.PrintingCatalog{
		Printers:   activeParts(doc.Printing.Printers),
		Filaments:  activeParts(doc.Printing.Filaments),
		Colors:     activeParts(doc.Printing.Colors),
		Strengths:  activeParts(doc.Printing.Strengths),
		OtherItems: activeParts(doc.Printing.OtherItems),
	}
	return &out, nil
}

func activeParts(parts []domain.Part) []domain.Part {
	var out []domain.Part
	for _, p := range parts {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Replace writes a whole new document (admin PUT).
func (s *Service) Replace(ctx context.Context, doc domain.CatalogDocument) (*domain.CatalogDocument, error) {
	return s.repo.Put(ctx, doc)
}

// update runs a read-modify-write cycle over the document.
func (s *Service) update(ctx context.Context, mutate func(*domain.CatalogDocument) error) (*domain.CatalogDocument, error) {
	doc, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := mutate(doc); err != nil {
		return nil, err
	}
	return s.repo.Put(ctx, *doc)
}

// UpsertService creates or renames a device service.
func (s *Service) UpsertService(ctx context.Context, device string, svc domain.DeviceService) (*domain.CatalogDocument, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil, domain.Required("device")
	}
	if strings.TrimSpace(svc.Name) == "" {
		return nil, domain.Required("name")
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		existing, ok := doc.Services[device]
		if ok {
			existing.Name = svc.Name
			existing.Icon = svc.Icon
			doc.Services[device] = existing
		} else {
			doc.Services[device] = svc
		}
		return nil
	})
}

// UpsertBrand adds or updates a brand of a device, preserving its models.
func (s *Service) UpsertBrand(ctx context.Context, device string, brand domain.Brand) (*domain.CatalogDocument, error) {
	if err := requireIDName(brand.ID, brand.Name); err != nil {
		return nil, err
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, b := range svc.Brands {
			if b.ID == brand.ID {
				brand.Models = b.Models
				svc.Brands[i] = brand
				doc.Services[device] = svc
				return nil
			}
		}
		svc.Brands = append(svc.Brands, brand)
		doc.Services[device] = svc
		return nil
	})
}

// DeleteBrand removes a brand and its models from a device.
func (s *Service) DeleteBrand(ctx context.Context, device, brandID string) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, b := range svc.Brands {
			if b.ID == brandID {
				svc.Brands = append(svc.Brands[:i], svc.Brands[i+1:]...)
				doc.Services[device] = svc
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// UpsertModel adds or updates a model under a brand.
func (s *Service) UpsertModel(ctx context.Context, device, brandID string, model domain.Model) (*domain.CatalogDocument, error) {
	if err := requireIDName(model.ID, model.Name); err != nil {
		return nil, err
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, b := range svc.Brands {
			if b.ID != brandID {
				continue
			}
			for j, m := range b.Models {
				if m.ID == model.ID {
					b.Models[j] = model
					svc.Brands[i] = b
					doc.Services[device] = svc
					return nil
				}
			}
			b.Models = append(b.Models, model)
			svc.Brands[i] = b
			doc.Services[device] = svc
			return nil
		}
		return domain.ErrNotFound
	})
}

// DeleteModel removes a model from a brand.
func (s *Service) DeleteModel(ctx context.Context, device, brandID, modelID string) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, b := range svc.Brands {
			if b.ID != brandID {
				continue
			}
			for j, m := range b.Models {
				if m.ID == modelID {
					b.Models = append(b.Models[:j], b.Models[j+1:]...)
					svc.Brands[i] = b
					doc.Services[device] = svc
					return nil
				}
			}
		}
		return domain.ErrNotFound
	})
}

// UpsertRepair adds or updates a repair on a device's menu.
func (s *Service) UpsertRepair(ctx context.Context, device string, repair domain.Repair) (*domain.CatalogDocument, error) {
	if err := requireIDName(repair.ID, repair.Name); err != nil {
		return nil, err
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, r := range svc.Repairs {
			if r.ID == repair.ID {
				svc.Repairs[i] = repair
				doc.Services[device] = svc
				return nil
			}
		}
		svc.Repairs = append(svc.Repairs, repair)
		doc.Services[device] = svc
		return nil
	})
}

// DeleteRepair removes a repair from a device's menu.
func (s *Service) DeleteRepair(ctx context.Context, device, repairID string) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		svc, ok := doc.Services[device]
		if !ok {
			return domain.ErrNotFound
		}
		for i, r := range svc.Repairs {
			if r.ID == repairID {
				svc.Repairs = append(svc.Repairs[:i], svc.Repairs[i+1:]...)
				doc.Services[device] = svc
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// UpsertBuildPart adds or updates a part in a custom-build category.
func (s *Service) UpsertBuildPart(ctx context.Context, category string, part domain.Part) (*domain.CatalogDocument, error) {
	if err := requireIDName(part.ID, part.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(category) == "" {
		return nil, domain.Required("category")
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		if doc.CustomBuilds == nil {
			doc.CustomBuilds = map[string][]domain.Part{}
		}
		doc.CustomBuilds[category] = upsertPart(doc.CustomBuilds[category], part)
		return nil
	})
}

// DeleteBuildPart removes a part from a custom-build category.
func (s *Service) DeleteBuildPart(ctx context.Context, category, partID string) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		parts, removed := removePart(doc.CustomBuilds[category], partID)
		if !removed {
			return domain.ErrNotFound
		}
		doc.CustomBuilds[category] = parts
		return nil
	})
}

// Printing list names accepted by UpsertPrintingPart / DeletePrintingPart.
const (
	PrintingPrinters   = "printers"
	PrintingFilaments  = "filaments"
	PrintingColors     = "colors"
	PrintingStrengths  = "strengths"
	PrintingOtherItems = "otherItems"
)

// UpsertPrintingPart adds or updates an entry in one of the printing lists.
func (s *Service) UpsertPrintingPart(ctx context.Context, list string, part domain.Part) (*domain.CatalogDocument, error) {
	if err := requireIDName(part.ID, part.Name); err != nil {
		return nil, err
	}
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		target, err := printingList(&doc.Printing, list)
		if err != nil {
			return err
		}
		*target = upsertPart(*target, part)
		return nil
	})
}

// DeletePrintingPart removes an entry from one of the printing lists.
func (s *Service) DeletePrintingPart(ctx context.Context, list, partID string) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		target, err := printingList(&doc.Printing, list)
		if err != nil {
			return err
		}
		parts, removed := removePart(*target, partID)
		if !removed {
			return domain.ErrNotFound
		}
		*target = parts
		return nil
	})
}

// SetCheckout replaces the fee schedule.
func (s *Service) SetCheckout(ctx context.Context, checkout domain.CheckoutConfig) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		doc.Checkout = checkout
		return nil
	})
}

// SetAnnouncement replaces the announcement banner.
func (s *Service) SetAnnouncement(ctx context.Context, a domain.Announcement) (*domain.CatalogDocument, error) {
	return s.update(ctx, func(doc *domain.CatalogDocument) error {
		doc.Announcement = a
		return nil
	})
}

func printingList(p *domain.PrintingCatalog, list string) (*[]domain.Part, error) {
	switch list {
	case PrintingPrinters:
		return &p.Printers, nil
	case PrintingFilaments:
		return &p.Filaments, nil
	case PrintingColors:
		return &p.Colors, nil
	case PrintingStrengths:
		return &p.Strengths, nil
	case PrintingOtherItems:
		return &p.OtherItems, nil
	default:
		return nil, domain.Invalid("list", "unknown printing list")
	}
}

func upsertPart(parts []domain.Part, part domain.Part) []domain.Part {
	for i, p := range parts {
		if p.ID == part.ID {
			parts[i] = part
			return parts
		}
	}
	return append(parts, part)
}

func removePart(parts []domain.Part, id string) ([]domain.Part, bool) {
	for i, p := range parts {
		if p.ID == id {
			return append(parts[:i], parts[i+1:]...), true
		}
	}
	return parts, false
}

func requireIDName(id, name string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Required("id")
	}
	if strings.TrimSpace(name) == "" {
		return domain.Required("name")
	}
	return nil
}
