package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/cache"
	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

const metricsCacheTTL = 1 * time.Minute

// MealInput carries the client-editable fields of a meal. The owner is
// never part of the input; it is stamped from the authenticated identity.
type MealInput struct {
	Name        string
	Description string
	OccurredAt  int64
	OnDiet      bool
}

// MealMetrics aggregates a user's adherence statistics. All four values
// are computed from a single fetch so they describe one snapshot.
type MealMetrics struct {
	TotalMeals         int `json:"total_meals"`
	TotalOnDiet        int `json:"total_on_diet"`
	TotalOffDiet       int `json:"total_off_diet"`
	BestOnDietSequence int `json:"best_on_diet_sequence"`
}

// MealService exposes the per-user meal ledger and its analytics. Every
// operation takes the owner identity explicitly; nothing is read from
// ambient state.
type MealService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input MealInput) (*model.Meal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Meal, error)
	Get(ctx context.Context, ownerID, mealID uuid.UUID) (*model.Meal, error)
	Update(ctx context.Context, ownerID, mealID uuid.UUID, input MealInput) error
	Delete(ctx context.Context, ownerID, mealID uuid.UUID) error
	Metrics(ctx context.Context, ownerID uuid.UUID) (*MealMetrics, error)
}

type mealService struct {
	repo  repository.MealRepository
	cache *cache.Client
}

// NewMealService builds a MealService with repository and cache.
func NewMealService(repo repository.MealRepository, cache *cache.Client) MealService {
	return &mealService{repo: repo, cache: cache}
}

func (s *mealService) metricsKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("meal_metrics:%s", ownerID)
}

func (s *mealService) Create(ctx context.Context, ownerID uuid.UUID, input MealInput) (*model.Meal, error) {
	meal := &model.Meal{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        input.Name,
		Description: input.Description,
		OccurredAt:  input.OccurredAt,
		OnDiet:      input.OnDiet,
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	_ = s.cache.Delete(ctx, s.metricsKey(ownerID))
	return meal, nil
}

func (s *mealService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Meal, error) {
	meals, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *mealService) Get(ctx context.Context, ownerID, mealID uuid.UUID) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, mealID, ownerID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return meal, nil
}

func (s *mealService) Update(ctx context.Context, ownerID, mealID uuid.UUID, input MealInput) error {
	affected, err := s.repo.Update(ctx, &model.Meal{
		ID:          mealID,
		UserID:      ownerID,
		Name:        input.Name,
		Description: input.Description,
		OccurredAt:  input.OccurredAt,
		OnDiet:      input.OnDiet,
	})
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if affected == 0 {
		return errors.ErrMealNotFound
	}
	_ = s.cache.Delete(ctx, s.metricsKey(ownerID))
	return nil
}

func (s *mealService) Delete(ctx context.Context, ownerID, mealID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, mealID, ownerID)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if affected == 0 {
		return errors.ErrMealNotFound
	}
	_ = s.cache.Delete(ctx, s.metricsKey(ownerID))
	return nil
}

// Metrics computes the adherence statistics from one owner-scoped fetch.
// The result is cached per user and invalidated on every write.
func (s *mealService) Metrics(ctx context.Context, ownerID uuid.UUID) (*MealMetrics, error) {
	if data, _ := s.cache.Get(ctx, s.metricsKey(ownerID)); data != nil {
		var cached MealMetrics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	meals, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	metrics := computeMetrics(meals)

	if payload, err := json.Marshal(metrics); err == nil {
		_ = s.cache.Set(ctx, s.metricsKey(ownerID), payload, metricsCacheTTL)
	}
	return metrics, nil
}

// computeMetrics walks the fetched sequence once. The best streak is the
// longest run of consecutive on-diet meals; a run resets on the first
// off-diet meal. Run length does not depend on walk direction, so the
// fetch order (most recent first) is used as-is.
func computeMetrics(meals []model.Meal) *MealMetrics {
	metrics := &MealMetrics{TotalMeals: len(meals)}

	run := 0
	for _, meal := range meals {
		if meal.OnDiet {
			metrics.TotalOnDiet++
			run++
			if run > metrics.BestOnDietSequence {
				metrics.BestOnDietSequence = run
			}
		} else {
			metrics.TotalOffDiet++
			run = 0
		}
	}
	return metrics
}
