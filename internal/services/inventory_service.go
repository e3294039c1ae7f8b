package services

import (
	"errors"

	"apexmotors/internal/domain"
	"apexmotors/internal/repos"
)

var ErrClassificationExists = errors.New("classification already exists")

// InventoryService covers the staff-only administration of classifications
// and vehicles.
type InventoryService struct {
	Classifications *repos.ClassificationRepo
	Vehicles        *repos.VehicleRepo
}

func NewInventoryService(cls *repos.ClassificationRepo, veh *repos.VehicleRepo) *InventoryService {
	return &InventoryService{Classifications: cls, Vehicles: veh}
}

func (s *InventoryService) AddClassification(name string) (int64, error) {
	exists, err := s.Classifications.NameExists(name)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrClassificationExists
	}
	return s.Classifications.Add(name)
}

func (s *InventoryService) AddVehicle(v domain.Vehicle) (int64, error) {
	return s.Vehicles.Add(v)
}

func (s *InventoryService) UpdateVehicle(v domain.Vehicle) error {
	return s.Vehicles.Update(v)
}

func (s *InventoryService) DeleteVehicle(id int64) error {
	return s.Vehicles.Delete(id)
}
