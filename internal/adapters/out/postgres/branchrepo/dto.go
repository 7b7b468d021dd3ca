// Package branchrepo persists branches with GORM.
package branchrepo

import (
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BranchDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(100);not null"`
	City    string    `gorm:"type:varchar(50);not null;index"`
	Address string    `gorm:"type:varchar(200);not null;default:''"`
	Phone   string    `gorm:"type:varchar(20);not null;default:''"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(b *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:      b.ID().Bytes(),
		Name:    b.Name(),
		City:    b.City(),
		Address: b.Address(),
		Phone:   b.Phone(),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return branch.NewBranch(id, dto.Name, dto.City, dto.Address, dto.Phone)
}
