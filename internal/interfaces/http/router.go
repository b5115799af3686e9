package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gruasdelsur/backoffice-api/internal/application/auth"
	"github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/application/usecase"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	ItemUC     *usecase.ItemUseCase
	LocationUC *usecase.LocationUseCase
	SupplierUC *usecase.SupplierUseCase
	CraneUC    *usecase.CraneUseCase
	AuthUC     *auth.AuthUseCase

	Poster    *inventory.MovementPoster
	KardexUC  *inventory.KardexUseCase
	BatchUC   *inventory.BatchUseCase
	VoucherUC *inventory.VoucherUseCase

	JWTSecret        string
	ExpiringSoonDays int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; alta de tenant previa al primer login)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/search", itemHandler.Search)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	// Cranes (protegido)
	cranes := protected.Group("/cranes")
	craneHandler := NewCraneHandler(deps.CraneUC)
	cranes.Post("/", craneHandler.Create)
	cranes.Get("/", craneHandler.List)

	// Inventory (protegido). Postear movimientos y borrar lotes requiere rol
	// de bodega o admin; las consultas las puede hacer cualquier usuario.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Poster, deps.KardexUC, deps.BatchUC, deps.VoucherUC, deps.ExpiringSoonDays)
	invGroup.Post("/movements",
		RequireRole(entity.RoleAdmin, entity.RoleBodeguero),
		inventoryHandler.PostMovement,
	)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/movements/:id/voucher", inventoryHandler.Voucher)
	invGroup.Get("/kardex", inventoryHandler.Kardex)
	invGroup.Get("/batches", inventoryHandler.ListBatches)
	invGroup.Get("/batches/expiring", inventoryHandler.ExpiringBatches)
	invGroup.Delete("/batches/:id",
		RequireRole(entity.RoleAdmin, entity.RoleBodeguero),
		inventoryHandler.DeleteBatch,
	)
}
