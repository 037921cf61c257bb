package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// siembra un kardex pequeño: 2 compras, 2 ventas y un consumo interno.
func sembrarKardex(t *testing.T, f *fixture) {
	t.Helper()
	f.store.addItem(itemID, unidadID, decimal.Zero)
	ctx := context.Background()

	_, err := f.uc.RecordInflow(ctx, entrada(bodegueroID, entity.ReasonPurchase, "30", "1.50"))
	require.NoError(t, err)
	_, err = f.uc.RecordInflow(ctx, entrada(bodegueroID, entity.ReasonPurchase, "20", "1.40"))
	require.NoError(t, err)
	_, err = f.uc.RecordOutflow(ctx, salida(vendedorID, entity.ReasonSale, "8"))
	require.NoError(t, err)
	_, err = f.uc.RecordOutflow(ctx, salida(vendedorID, entity.ReasonSale, "4"))
	require.NoError(t, err)
	_, err = f.uc.RecordOutflow(ctx, salida(bodegueroID, entity.ReasonInternalConsumption, "2"))
	require.NoError(t, err)
}

func TestListMovements_FiltrosYPaginacion(t *testing.T) {
	f := newFixture()
	sembrarKardex(t, f)
	ctx := context.Background()

	// sin filtro: las 5 filas, más recientes primero
	page, total, err := f.query.ListMovements(ctx, vendedorID, unidadID, repository.MovementFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 5)
	assert.Equal(t, entity.ReasonInternalConsumption, page[0].Reason)

	// paginación: total siempre del predicado completo
	page, total, err = f.query.ListMovements(ctx, vendedorID, unidadID, repository.MovementFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	// por tipo
	_, total, err = f.query.ListMovements(ctx, vendedorID, unidadID,
		repository.MovementFilter{MovementType: entity.MovementTypeOUT}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	// por motivo
	_, total, err = f.query.ListMovements(ctx, vendedorID, unidadID,
		repository.MovementFilter{Reason: entity.ReasonSale}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// por quién lo hizo
	_, total, err = f.query.ListMovements(ctx, vendedorID, unidadID,
		repository.MovementFilter{PerformedBy: bodegueroID}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	// la unidad es obligatoria: el kardex siempre se consulta por unidad
	_, _, err = f.query.ListMovements(ctx, vendedorID, "", repository.MovementFilter{}, 50, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_RevertidosSeListanConFlag(t *testing.T) {
	f := newFixture()
	f.store.addItem(itemID, unidadID, dec("10"))
	ctx := context.Background()

	venta, err := f.uc.RecordOutflow(ctx, salida(vendedorID, entity.ReasonSale, "4"))
	require.NoError(t, err)
	_, err = f.uc.RevertMovement(ctx, venta.ID, gerenteID)
	require.NoError(t, err)

	page, total, err := f.query.ListMovements(ctx, vendedorID, unidadID, repository.MovementFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, page, 1)
	assert.True(t, page[0].Reverted) // hecho histórico, no se oculta
}

func TestGetItemHistory(t *testing.T) {
	f := newFixture()
	sembrarKardex(t, f)
	ctx := context.Background()

	history, err := f.query.GetItemHistory(ctx, vendedorID, itemID, nil, nil)
	require.NoError(t, err)
	require.Len(t, history, 5)
	// orden cronológico: reconstruir el saldo paso a paso debe cerrar en el actual
	running := decimal.Zero
	for _, m := range history {
		running = running.Add(m.SignedQuantity())
		require.False(t, running.IsNegative(), "el historial jamás pasa por saldo negativo")
	}
	assert.True(t, running.Equal(f.store.stock(itemID)))

	_, err = f.query.GetItemHistory(ctx, vendedorID, "item-fantasma", nil, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetItemHistory_RangoDeFechas(t *testing.T) {
	f := newFixture()
	sembrarKardex(t, f)
	ctx := context.Background()

	futuro := time.Now().Add(time.Hour)
	history, err := f.query.GetItemHistory(ctx, vendedorID, itemID, &futuro, nil)
	require.NoError(t, err)
	assert.Empty(t, history)

	pasado := time.Now().Add(-time.Hour)
	history, err = f.query.GetItemHistory(ctx, vendedorID, itemID, &pasado, &futuro)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestGetSummaryByPeriod_CuadraConElSaldo(t *testing.T) {
	f := newFixture()
	sembrarKardex(t, f)
	ctx := context.Background()

	resumen, err := f.query.GetSummaryByPeriod(ctx, gerenteID, unidadID, nil, nil)
	require.NoError(t, err)
	assert.True(t, resumen.TotalIn.Equal(dec("50")))
	assert.True(t, resumen.TotalOut.Equal(dec("14")))
	assert.True(t, resumen.NetChange.Equal(dec("36")))
	assert.True(t, resumen.NetChange.Equal(f.store.stock(itemID)))

	// desglose por motivo, con signo
	assert.True(t, resumen.ByReason[entity.ReasonPurchase].Equal(dec("50")))
	assert.True(t, resumen.ByReason[entity.ReasonSale].Equal(dec("-12")))
	assert.True(t, resumen.ByReason[entity.ReasonInternalConsumption].Equal(dec("-2")))

	_, err = f.query.GetSummaryByPeriod(ctx, gerenteID, "", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummaryByPeriod_ExcluyeRevertidos(t *testing.T) {
	f := newFixture()
	f.store.addItem(itemID, unidadID, dec("40"))
	ctx := context.Background()

	venta, err := f.uc.RecordOutflow(ctx, salida(vendedorID, entity.ReasonSale, "10"))
	require.NoError(t, err)
	_, err = f.uc.RevertMovement(ctx, venta.ID, gerenteID)
	require.NoError(t, err)

	resumen, err := f.query.GetSummaryByPeriod(ctx, gerenteID, unidadID, nil, nil)
	require.NoError(t, err)
	// venta revertida: no aporta ni a TotalOut ni al neto
	assert.True(t, resumen.TotalOut.IsZero())
	assert.True(t, resumen.NetChange.IsZero())
}

func TestQuery_AutorizacionRequerida(t *testing.T) {
	f := newFixture()
	sembrarKardex(t, f)
	ctx := context.Background()

	_, _, err := f.query.ListMovements(ctx, inactivoID, unidadID, repository.MovementFilter{}, 50, 0)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.query.GetItemHistory(ctx, "actor-fantasma", itemID, nil, nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.query.GetSummaryByPeriod(ctx, "", unidadID, nil, nil)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
