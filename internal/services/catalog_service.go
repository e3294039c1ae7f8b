package services

import (
	"apexmotors/internal/domain"
	"apexmotors/internal/repos"
)

// CatalogService backs the public browsing pages and the navigation bar.
type CatalogService struct {
	Classifications *repos.ClassificationRepo
	Vehicles        *repos.VehicleRepo
}

func NewCatalogService(cls *repos.ClassificationRepo, veh *repos.VehicleRepo) *CatalogService {
	return &CatalogService{Classifications: cls, Vehicles: veh}
}

// Nav returns the full classification list. Derived fresh per request; the
// table is tiny and admin adds must show up immediately.
func (s *CatalogService) Nav() ([]domain.Classification, error) {
	return s.Classifications.List()
}

func (s *CatalogService) Classification(id int64) (domain.Classification, error) {
	return s.Classifications.Get(id)
}

func (s *CatalogService) VehiclesByClassification(id int64) ([]domain.Vehicle, error) {
	return s.Vehicles.ListByClassification(id)
}

func (s *CatalogService) Vehicle(id int64) (domain.Vehicle, error) {
	return s.Vehicles.Get(id)
}
