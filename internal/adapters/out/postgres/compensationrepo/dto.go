// Package compensationrepo persists the durable compensation queue.
// Each row is one reversal step of a cancelled order; the background worker
// drains rows in sequence order per order.
package compensationrepo

import (
	"time"

	"fueldrop/internal/core/domain/model/compensation"
	"fueldrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StepDTO represents the database structure for persisting compensation steps.
type StepDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Seq       int
	Kind      int
	Meta      string
	Done      bool `gorm:"index"`
	Attempts  int
	CreatedAt time.Time
}

// TableName specifies the database table name for compensation steps.
func (StepDTO) TableName() string {
	return "compensation_steps"
}

// fromDomain converts a compensation step to its database representation.
func fromDomain(step *compensation.Step) StepDTO {
	return StepDTO{
		ID:        step.ID().Bytes(),
		OrderID:   step.OrderID().Bytes(),
		Seq:       step.Seq(),
		Kind:      int(step.Kind()),
		Meta:      step.Meta(),
		Done:      step.Done(),
		Attempts:  step.Attempts(),
		CreatedAt: step.CreatedAt(),
	}
}

// toDomain converts a database DTO to a compensation step entity.
func toDomain(dto StepDTO) (*compensation.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return compensation.RestoreStep(
		id,
		orderID,
		dto.Seq,
		compensation.Kind(dto.Kind),
		dto.Meta,
		dto.Done,
		dto.Attempts,
		dto.CreatedAt,
	)
}
