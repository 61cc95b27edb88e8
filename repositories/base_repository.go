package repositories

import (
	"context"
	"errors"
	"fmt"

	"klinika.admin/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a row with the requested key does not exist.
var ErrNotFound = errors.New("record not found")

// IBaseRepository is the CRUD surface shared by every entity repository.
type IBaseRepository[T any] interface {
	FindAll(ctx context.Context, preloads ...string) ([]T, error)
	FindByID(ctx context.Context, id uint, preloads ...string) (*T, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, query string, args ...any) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
}

// BaseRepository implements IBaseRepository on top of gorm.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository creates a generic repository for T.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *BaseRepository[T]) entityName() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// FindAll returns every row ordered by primary key.
func (r *BaseRepository[T]) FindAll(ctx context.Context, preloads ...string) ([]T, error) {
	var entities []T
	query := r.getDB(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.Order("id asc").Find(&entities).Error; err != nil {
		configslog.Log.Error("BaseRepository.FindAll: DB error", zap.String("entity", r.entityName()), zap.Error(err))
		return nil, err
	}
	return entities, nil
}

// FindByID returns the row with the given primary key or ErrNotFound.
func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	query := r.getDB(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	err := query.First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BaseRepository.FindByID: DB error", zap.String("entity", r.entityName()), zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &entity, nil
}

// Exists reports whether a row with the given primary key exists.
func (r *BaseRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	return r.countWhere(ctx, "id = ?", id)
}

// Count returns the number of rows matching query.
func (r *BaseRepository[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	var model T
	err := r.getDB(ctx).Model(&model).Where(query, args...).Count(&count).Error
	if err != nil {
		configslog.Log.Error("BaseRepository.Count: DB error", zap.String("entity", r.entityName()), zap.String("query", query), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CountAll returns the number of rows in the table.
func (r *BaseRepository[T]) CountAll(ctx context.Context) (int64, error) {
	var count int64
	var model T
	if err := r.getDB(ctx).Model(&model).Count(&count).Error; err != nil {
		configslog.Log.Error("BaseRepository.CountAll: DB error", zap.String("entity", r.entityName()), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *BaseRepository[T]) countWhere(ctx context.Context, query string, args ...any) (bool, error) {
	count, err := r.Count(ctx, query, args...)
	return count > 0, err
}

// Create inserts entity. Associations are never written through the parent.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot create nil entity")
	}
	return r.getDB(ctx).Omit(clause.Associations).Create(entity).Error
}

// Update saves every column of entity.
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot update nil entity")
	}
	return r.getDB(ctx).Omit(clause.Associations).Save(entity).Error
}

// Delete removes the row with the given primary key.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	var model T
	result := r.getDB(ctx).Delete(&model, id)
	if result.Error != nil {
		configslog.Log.Error("BaseRepository.Delete: DB error", zap.String("entity", r.entityName()), zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
