package carrierrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// GormCarrierRepository implements ports.CarrierRepository using GORM.
type GormCarrierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCarrierRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierRepository {
	return &GormCarrierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the carrier with its drivers and vehicles. A taken MC number or
// plate fails with ObjectExistsError.
func (r *GormCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return uniqueViolation(err, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves name and capacity and inserts drivers and vehicles that are not
// stored yet. Drivers and vehicles are never removed from a carrier.
func (r *GormCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CarrierDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":         dto.Name,
		"mc_number":    dto.MCNumber,
		"max_capacity": dto.MaxCapacity,
	})
	if result.Error != nil {
		return uniqueViolation(result.Error, aggregate)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("carrier", aggregate.ID())
	}

	if len(dto.Drivers) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Drivers).Error; err != nil {
			return err
		}
	}
	if len(dto.Vehicles) > 0 {
		err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(&dto.Vehicles).Error
		if err != nil {
			return uniqueViolation(err, aggregate)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the carrier row until the surrounding transaction ends.
func (r *GormCarrierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormCarrierRepository) GetAll(ctx context.Context) ([]*carrier.Carrier, error) {
	var dtos []CarrierDTO
	err := r.db.WithContext(ctx).
		Preload("Drivers", withStableOrder).
		Preload("Vehicles", withStableOrder).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	carriers := make([]*carrier.Carrier, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		carriers = append(carriers, c)
	}
	return carriers, nil
}

func (r *GormCarrierRepository) ExistsByMCNumber(ctx context.Context, mcNumber string) (bool, error) {
	return r.exists(ctx, &CarrierDTO{}, "mc_number = ?", strings.ToUpper(strings.TrimSpace(mcNumber)))
}

func (r *GormCarrierRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	return r.exists(ctx, &VehicleDTO{}, "plate_number = ?", strings.ToUpper(strings.TrimSpace(plateNumber)))
}

func (r *GormCarrierRepository) DriverExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.exists(ctx, &DriverDTO{}, "id = ?", id.Bytes())
}

func (r *GormCarrierRepository) VehicleExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return r.exists(ctx, &VehicleDTO{}, "id = ?", id.Bytes())
}

func (r *GormCarrierRepository) exists(ctx context.Context, model any, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where(query, arg).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCarrierRepository) load(db *gorm.DB, id kernel.UUID) (*carrier.Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	err := db.First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier", id)
		}
		return nil, err
	}

	// Children are loaded without the locking clause of the carrier row.
	plain := db.Session(&gorm.Session{NewDB: true})
	if err = plain.Order("id").Find(&dto.Drivers, "carrier_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}
	if err = plain.Order("id").Find(&dto.Vehicles, "carrier_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func withStableOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// uniqueViolation maps a unique index hit. The translated driver error does
// not name the index, so the MC number is reported as the conflicting value.
func uniqueViolation(err error, c *carrier.Carrier) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return errs.NewObjectExistsErrorWithCause("mc number or plate number", c.MCNumber(), err)
}
