package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// validateMovement valida un movimiento candidato y devuelve TODAS las reglas
// violadas (el caller arma un solo mensaje combinado). item puede ser nil si
// aún no se resolvió; la consistencia ítem-unidad solo se evalúa con item.
func validateMovement(in MovementInput, movementType string, item *entity.Item) domain.ValidationErrors {
	var verrs domain.ValidationErrors

	if in.ItemID == "" {
		verrs = append(verrs, domain.Violation{Field: "item_id", Message: "es obligatorio"})
	}
	if in.UnitID == "" {
		verrs = append(verrs, domain.Violation{Field: "unit_id", Message: "es obligatorio"})
	}
	if movementType != entity.MovementTypeIN && movementType != entity.MovementTypeOUT {
		verrs = append(verrs, domain.Violation{Field: "movement_type", Message: "tipo desconocido"})
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		verrs = append(verrs, domain.Violation{Field: "quantity", Message: "debe ser mayor que cero"})
	}
	if !entity.KnownReason(in.Reason) {
		verrs = append(verrs, domain.Violation{Field: "reason", Message: "motivo desconocido"})
	} else if !entity.ReasonAllowsType(in.Reason, movementType) {
		verrs = append(verrs, domain.Violation{Field: "reason", Message: "motivo incompatible con el tipo de movimiento"})
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		verrs = append(verrs, domain.Violation{Field: "unit_cost", Message: "no puede ser negativo"})
	}
	if in.Reason == entity.ReasonAdjustment && in.Notes == "" {
		verrs = append(verrs, domain.Violation{Field: "notes", Message: "obligatorio para ajustes"})
	}
	if item != nil && in.UnitID != "" && item.UnitID != in.UnitID {
		verrs = append(verrs, domain.Violation{Field: "item_id", Message: "el ítem no pertenece a la unidad indicada"})
	}

	return verrs
}
