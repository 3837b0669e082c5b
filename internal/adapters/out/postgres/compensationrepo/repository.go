package compensationrepo

import (
	"context"

	"fueldrop/internal/core/domain/model/compensation"

	"gorm.io/gorm"
)

// GormCompensationRepository implements CompensationRepository using GORM.
type GormCompensationRepository struct {
	db *gorm.DB
}

// NewGormCompensationRepository creates a new GORM compensation repository.
func NewGormCompensationRepository(db *gorm.DB) *GormCompensationRepository {
	return &GormCompensationRepository{db: db}
}

// Add saves a batch of pending steps to the database.
func (r *GormCompensationRepository) Add(ctx context.Context, steps []*compensation.Step) error {
	if len(steps) == 0 {
		return nil
	}

	dtos := make([]StepDTO, 0, len(steps))
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(step))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update persists an executed step's attempt counter and done flag.
func (r *GormCompensationRepository) Update(ctx context.Context, step *compensation.Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	dto := fromDomain(step)
	result := r.db.WithContext(ctx).
		Model(&StepDTO{}).
		Where("id = ?", dto.ID).
		Select("done", "attempts").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetNextPending retrieves, per order with outstanding work, the pending step
// with the lowest sequence number. Step order within a cancellation is strict:
// a failed step blocks the ones behind it until it succeeds.
func (r *GormCompensationRepository) GetNextPending(ctx context.Context, limit int) ([]*compensation.Step, error) {
	var dtos []StepDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (order_id)
			id, order_id, seq, kind, meta, done, attempts, created_at
		FROM compensation_steps
		WHERE done = false
		ORDER BY order_id, seq
		LIMIT ?
	`, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	steps := make([]*compensation.Step, 0, len(dtos))
	for _, dto := range dtos {
		step, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		steps = append(steps, step)
	}

	return steps, nil
}
