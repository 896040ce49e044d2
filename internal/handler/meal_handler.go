package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/model"
	"dailydiet/internal/service"
)

// MealHandler handles the meal ledger and metrics endpoints. All
// handlers run behind auth.Middleware, so a resolved user is always
// available on the context.
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// MealRequest represents a meal create/update request.
type MealRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	IsOnDiet    *bool  `json:"isOnDiet" validate:"required"`
}

// MealResponse represents a meal in responses. Date is the UTC calendar
// day of the stored occurrence timestamp, without time of day.
type MealResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsOnDiet    bool      `json:"isOnDiet"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListMealsResponse wraps the meal collection.
type ListMealsResponse struct {
	Meals []MealResponse `json:"meals"`
}

// MetricsResponse represents the adherence statistics payload.
type MetricsResponse struct {
	TotalMeals         int `json:"totalMeals"`
	TotalMealsOnDiet   int `json:"totalMealsOnDiet"`
	TotalMealsOffDiet  int `json:"totalMealsOffDiet"`
	BestOnDietSequence int `json:"bestOnDietSequence"`
}

func toMealResponse(meal *model.Meal) MealResponse {
	return MealResponse{
		ID:          meal.ID,
		Name:        meal.Name,
		Description: meal.Description,
		IsOnDiet:    meal.OnDiet,
		Date:        formatMealDate(meal.OccurredAt),
		CreatedAt:   meal.CreatedAt,
		UpdatedAt:   meal.UpdatedAt,
	}
}

// formatMealDate truncates a millisecond epoch timestamp to its UTC
// calendar day.
func formatMealDate(epochMillis int64) string {
	return time.UnixMilli(epochMillis).UTC().Format("2006-01-02")
}

func (h *MealHandler) bindMealInput(c echo.Context) (service.MealInput, error) {
	var req MealRequest
	if err := c.Bind(&req); err != nil {
		return service.MealInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return service.MealInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return service.MealInput{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "date must be an RFC 3339 timestamp",
			Code:  "INVALID_DATE",
		})
	}
	return service.MealInput{
		Name:        req.Name,
		Description: req.Description,
		OccurredAt:  date.UnixMilli(),
		OnDiet:      *req.IsOnDiet,
	}, nil
}

func mealIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid meal ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// CreateMeal godoc
// @Summary Record a meal
// @Tags meals
// @Accept json
// @Produce json
// @Param meal body MealRequest true "Meal payload"
// @Success 201 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals [post]
func (h *MealHandler) CreateMeal(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	input, err := h.bindMealInput(c)
	if err != nil {
		return err
	}

	meal, err := h.mealService.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, toMealResponse(meal))
}

// ListMeals godoc
// @Summary List the caller's meals
// @Tags meals
// @Produce json
// @Success 200 {object} ListMealsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals [get]
func (h *MealHandler) ListMeals(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	meals, err := h.mealService.List(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := ListMealsResponse{Meals: make([]MealResponse, 0, len(meals))}
	for i := range meals {
		resp.Meals = append(resp.Meals, toMealResponse(&meals[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMeal godoc
// @Summary Get one of the caller's meals
// @Tags meals
// @Produce json
// @Param id path string true "Meal ID"
// @Success 200 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals/{id} [get]
func (h *MealHandler) GetMeal(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	mealID, err := mealIDParam(c)
	if err != nil {
		return err
	}

	meal, err := h.mealService.Get(c.Request().Context(), user.ID, mealID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toMealResponse(meal))
}

// UpdateMeal godoc
// @Summary Update one of the caller's meals
// @Tags meals
// @Accept json
// @Produce json
// @Param id path string true "Meal ID"
// @Param meal body MealRequest true "Meal payload"
// @Success 200 {object} MealResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals/{id} [put]
func (h *MealHandler) UpdateMeal(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	mealID, err := mealIDParam(c)
	if err != nil {
		return err
	}

	input, err := h.bindMealInput(c)
	if err != nil {
		return err
	}

	if err := h.mealService.Update(c.Request().Context(), user.ID, mealID, input); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusOK)
}

// DeleteMeal godoc
// @Summary Delete one of the caller's meals
// @Tags meals
// @Param id path string true "Meal ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) DeleteMeal(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	mealID, err := mealIDParam(c)
	if err != nil {
		return err
	}

	if err := h.mealService.Delete(c.Request().Context(), user.ID, mealID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetMetrics godoc
// @Summary Get the caller's adherence metrics
// @Tags meals
// @Produce json
// @Success 200 {object} MetricsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals/metrics [get]
func (h *MealHandler) GetMetrics(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	metrics, err := h.mealService.Metrics(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MetricsResponse{
		TotalMeals:         metrics.TotalMeals,
		TotalMealsOnDiet:   metrics.TotalOnDiet,
		TotalMealsOffDiet:  metrics.TotalOffDiet,
		BestOnDietSequence: metrics.BestOnDietSequence,
	})
}
