package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dailydiet/internal/auth"
	"dailydiet/internal/handler"
	"dailydiet/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	userRepo repository.UserRepository,
	userHandler *handler.UserHandler,
	mealHandler *handler.MealHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", userHandler.CreateUser)

	// Meal routes require a resolved session
	meals := e.Group("/meals", auth.Middleware(userRepo))
	meals.POST("", mealHandler.CreateMeal)
	meals.GET("", mealHandler.ListMeals)
	meals.GET("/metrics", mealHandler.GetMetrics)
	meals.GET("/:id", mealHandler.GetMeal)
	meals.PUT("/:id", mealHandler.UpdateMeal)
	meals.DELETE("/:id", mealHandler.DeleteMeal)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
