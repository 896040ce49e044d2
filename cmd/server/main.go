package main

import (
	"log"
	"net/http"
	"os"

	_ "dailydiet/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dailydiet/internal/cache"
	"dailydiet/internal/config"
	"dailydiet/internal/db"
	"dailydiet/internal/handler"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
	"dailydiet/internal/router"
	"dailydiet/internal/service"
)

// @title Daily Diet API
// @version 1.0
// @description Personal diet tracker: session-authenticated meal ledger with adherence metrics.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Meal{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.User{}, &model.Meal{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	mealRepo := repository.NewMealRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo)
	mealService := service.NewMealService(mealRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	mealHandler := handler.NewMealHandler(mealService)

	// Register routes
	router.Register(e, userRepo, userHandler, mealHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
