package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/model"
)

// MealRepository defines meal persistence operations. Every read and
// mutation on a single meal is filtered by (id, user_id) in one statement,
// so ownership is enforced by the store itself with no check-then-act gap.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Meal, error)
	Update(ctx context.Context, meal *model.Meal) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create inserts a new meal record.
func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

// ListByUser returns the user's meals ordered by occurrence time, most recent first.
func (r *mealRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// FindByID finds a meal by id scoped to its owner.
func (r *mealRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// Update applies a conditional update filtered by (id, user_id) and returns
// the number of rows affected; zero means no row matched both filters.
func (r *mealRepository) Update(ctx context.Context, meal *model.Meal) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Meal{}).
		Where("id = ? AND user_id = ?", meal.ID, meal.UserID).
		Updates(map[string]interface{}{
			"name":        meal.Name,
			"description": meal.Description,
			"occurred_at": meal.OccurredAt,
			"on_diet":     meal.OnDiet,
		})
	return res.RowsAffected, res.Error
}

// Delete removes a meal in a single statement filtered by (id, user_id)
// and returns the number of rows affected.
func (r *mealRepository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Meal{})
	return res.RowsAffected, res.Error
}
