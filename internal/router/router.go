package router

import (
	"time"

	"auraops/internal/config"
	"auraops/internal/handler"
	"auraops/internal/infra"
	"auraops/internal/middleware"
	"auraops/internal/repository"
	"auraops/internal/service"
	"auraops/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	menuRepo := repository.NewMenuItemRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	costHistoryRepo := repository.NewCostHistoryRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	deductionSvc := service.NewDeductionService(menuRepo, ingredientRepo, movementRepo)
	saleSvc := service.NewSaleService(saleRepo, deductionSvc, dispatcher, cfg.SaleNumberPrefix)
	menuSvc := service.NewMenuService(menuRepo, costHistoryRepo)
	inventorySvc := service.NewInventoryService(ingredientRepo, movementRepo)
	shiftSvc := service.NewShiftService(shiftRepo)
	supplierSvc := service.NewSupplierService(supplierRepo, ingredientRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	salesH := handler.NewSalesHandler(saleSvc, deductionSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	ingredientsH := handler.NewIngredientsHandler(inventorySvc)
	shiftsH := handler.NewShiftsHandler(shiftSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	pricesH := handler.NewPricesHandler(menuRepo, rdb, time.Duration(cfg.PriceCacheSeconds)*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Price check — read-only, cached
	r.GET("/v1/menu/price/:id", pricesH.GetPrice)

	v1 := r.Group("/v1")
	{
		v1.POST("/sales", salesH.Process)
		v1.POST("/sales/deduct", salesH.Deduct)
		v1.GET("/sales", salesH.List)
		v1.GET("/sales/:id", salesH.Get)

		menu := v1.Group("/menu-items")
		{
			menu.POST("", menuH.Create)
			menu.GET("", menuH.List)
			menu.GET("/:id", menuH.Get)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Deactivate)
			menu.PATCH("/:id/reactivate", menuH.Reactivate)
			menu.GET("/:id/cost-history", menuH.CostHistory)
		}

		ing := v1.Group("/ingredients")
		{
			ing.POST("", ingredientsH.Create)
			ing.GET("", ingredientsH.List)
			ing.GET("/:id", ingredientsH.Get)
			ing.PUT("/:id", ingredientsH.Update)
			ing.DELETE("/:id", ingredientsH.Deactivate)
			ing.POST("/:id/adjust", ingredientsH.AdjustStock)
			ing.POST("/:id/restock", ingredientsH.Restock)
		}

		inv := v1.Group("/inventory")
		{
			inv.GET("/alerts", ingredientsH.LowStockAlerts)
			inv.GET("/movements", ingredientsH.Movements)
		}

		shifts := v1.Group("/shifts")
		{
			shifts.POST("/check-in", shiftsH.CheckIn)
			shifts.POST("/:id/check-out", shiftsH.CheckOut)
			shifts.GET("/active", shiftsH.Active)
			shifts.GET("", shiftsH.List)
		}

		sup := v1.Group("/suppliers")
		{
			sup.POST("", suppliersH.Create)
			sup.GET("", suppliersH.List)
			sup.GET("/:id", suppliersH.Get)
			sup.PUT("/:id", suppliersH.Update)
			sup.DELETE("/:id", suppliersH.Deactivate)
			sup.GET("/:id/ingredients", suppliersH.Ingredients)
		}

		cat := v1.Group("/categories")
		{
			cat.POST("", categoriesH.Create)
			cat.GET("", categoriesH.List)
			cat.PUT("/:id", categoriesH.Update)
			cat.DELETE("/:id", categoriesH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
