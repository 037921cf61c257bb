package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC  *ledger.LedgerUseCase
	QueryUC   *ledger.QueryUseCase
	ItemUC    *usecase.ItemUseCase
	UnitUC    *usecase.UnitUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; las
// operaciones del kardex además pasan por el Gate (directorio de personal)
// dentro del caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Units (creación solo gerencial; el filtro por claim es un corte grueso,
	// no la autorización del ledger)
	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente), unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleBodeguero), itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	// Ledger (kardex)
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.QueryUC)
	ledgerGroup.Post("/entries", ledgerHandler.RecordEntry)
	ledgerGroup.Post("/exits", ledgerHandler.RecordExit)
	ledgerGroup.Post("/adjustments", ledgerHandler.AdjustStock)
	ledgerGroup.Get("/movements", ledgerHandler.ListMovements)
	ledgerGroup.Post("/movements/:id/revert", ledgerHandler.RevertMovement)
	ledgerGroup.Patch("/movements/:id/notes", ledgerHandler.EditNotes)
	ledgerGroup.Delete("/movements/:id", ledgerHandler.SoftDelete)
	ledgerGroup.Get("/items/:id/history", ledgerHandler.GetItemHistory)
	ledgerGroup.Get("/summary", ledgerHandler.GetSummary)
}
