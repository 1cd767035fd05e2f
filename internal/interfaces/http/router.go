package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-app/internal/application/auth"
	"github.com/jhoicas/inventory-app/internal/application/usecase"
	"github.com/jhoicas/inventory-app/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	AdminUC   *usecase.AdminUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-request-otp", authHandler.RequestRegistrationCode)
	authGroup.Post("/register-verify", authHandler.VerifyRegistration)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password-request", authHandler.RequestPasswordReset)
	authGroup.Post("/forgot-password-verify", authHandler.VerifyPasswordReset)
	authGroup.Post("/google", authHandler.GoogleLogin)

	// Products (protegido, requiere Bearer Token)
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/summary", productHandler.Summary)
	products.Get("/search", productHandler.Search)
	products.Get("/export", productHandler.Export)
	products.Post("/import", productHandler.Import)
	products.Post("/", productHandler.Create)
	products.Get("/:id/history", productHandler.History)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Admin (protegido, solo rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
