package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no record with the requested id exists.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID reports an id that can never match a stored record.
	ErrInvalidID = errors.New("invalid id")
)

// Identifiable is the capability an entity needs to live in a Repository.
type Identifiable interface {
	GetID() int
}

// Repository is a generic data-access layer over a single gorm-mapped table.
// Every call round-trips to the store; nothing is cached in process.
type Repository[T Identifiable] struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New[T Identifiable](db *gorm.DB, log *zap.SugaredLogger) *Repository[T] {
	return &Repository[T]{db: db, log: log}
}

// ListAll fetches every record of the entity type.
func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		r.log.Errorw("list all failed", "error", err)
		return nil, fmt.Errorf("list all: %w", err)
	}
	return out, nil
}

// GetByID returns the record with the given primary key. Non-positive ids
// fail fast without touching the store.
func (r *Repository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	if id <= 0 {
		r.log.Warnw("lookup with invalid id", "id", id)
		return nil, ErrInvalidID
	}
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Errorw("get by id failed", "id", id, "error", err)
		return nil, fmt.Errorf("get by id %d: %w", id, err)
	}
	return &entity, nil
}

// FindWhere returns every record matching the filter. An empty result is not
// an error.
func (r *Repository[T]) FindWhere(ctx context.Context, filter Filter) ([]T, error) {
	out := []T{}
	if err := filter.apply(r.db.WithContext(ctx)).Find(&out).Error; err != nil {
		r.log.Errorw("filtered query failed", "error", err)
		return nil, fmt.Errorf("find where: %w", err)
	}
	return out, nil
}

// Add inserts the entity, letting the store assign its id.
func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.log.Errorw("insert failed", "error", err)
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// Update writes all fields of the entity back to its row. No existence check
// is made first: saving an absent id no-ops at the store and still reports
// success, so callers wanting a 404 must look the record up themselves.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	// Select("*") writes zero-valued fields too; unlike Save, Updates never
	// inserts when the row is absent.
	if err := r.db.WithContext(ctx).Model(entity).Select("*").Updates(entity).Error; err != nil {
		r.log.Errorw("update failed", "id", (*entity).GetID(), "error", err)
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Remove deletes the entity after confirming it still exists. Removing an
// absent record reports ErrNotFound rather than silently succeeding.
func (r *Repository[T]) Remove(ctx context.Context, entity *T) error {
	existing, err := r.GetByID(ctx, (*entity).GetID())
	if err != nil {
		if errors.Is(err, ErrInvalidID) {
			return ErrNotFound
		}
		return err
	}
	if err := r.db.WithContext(ctx).Delete(existing).Error; err != nil {
		r.log.Errorw("delete failed", "id", (*entity).GetID(), "error", err)
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
