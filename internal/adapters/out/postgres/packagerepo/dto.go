// Package packagerepo persists the packages of a shipment with GORM.
package packagerepo

import (
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(200);not null"`
	DeclaredValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Weight        decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Dimensions    string          `gorm:"type:varchar(50);not null;default:''"`

	Shipment *shipmentrepo.ShipmentDTO `gorm:"foreignKey:ShipmentID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(p *parcel.Package) PackageDTO {
	return PackageDTO{
		ID:            p.ID().Bytes(),
		ShipmentID:    p.ShipmentID().Bytes(),
		Description:   p.Description(),
		DeclaredValue: p.DeclaredValue(),
		Weight:        p.Weight(),
		Dimensions:    p.Dimensions(),
	}
}

func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	return parcel.NewPackage(id, shipmentID, dto.Description, dto.DeclaredValue, dto.Weight, dto.Dimensions)
}
