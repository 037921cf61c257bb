// audit recalcula el saldo de cada ítem desde el kardex y lo compara con el
// saldo materializado. En operación normal el saldo NUNCA se recalcula en
// batch: esta herramienta existe solo para auditoría y reparación.
//
// Uso: go run ./cmd/audit [-fix]
// Sin -fix solo reporta las desviaciones; con -fix corrige current_stock
// dentro de una transacción por ítem.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

func main() {
	fix := flag.Bool("fix", false, "corregir los saldos desviados")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Saldo real = suma neta de movimientos no revertidos y no borrados:
	// el mismo predicado que mantiene el reconciliador.
	query := `
		SELECT i.id, i.name, i.current_stock,
			COALESCE(SUM(CASE WHEN m.movement_type = 'IN' THEN m.quantity ELSE -m.quantity END), 0) AS replayed
		FROM items i
		LEFT JOIN stock_movements m
			ON m.item_id = i.id AND m.reverted = false AND m.deleted_at IS NULL
		GROUP BY i.id, i.name, i.current_stock
		ORDER BY i.name`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar saldos")
	}
	defer rows.Close()

	type drift struct {
		id, name         string
		stored, replayed decimal.Decimal
	}
	var drifts []drift
	var checked int
	for rows.Next() {
		var d drift
		if err := rows.Scan(&d.id, &d.name, &d.stored, &d.replayed); err != nil {
			log.Fatal().Err(err).Msg("scan saldo")
		}
		checked++
		if !d.stored.Equal(d.replayed) {
			drifts = append(drifts, d)
		}
	}
	if err := rows.Err(); err != nil {
		log.Fatal().Err(err).Msg("iterar saldos")
	}

	log.Info().Int("items", checked).Int("desviados", len(drifts)).Msg("auditoría de saldos completada")
	for _, d := range drifts {
		log.Warn().
			Str("item", d.id).
			Str("name", d.name).
			Str("stored", d.stored.String()).
			Str("replayed", d.replayed.String()).
			Msg("saldo desviado del kardex")
	}

	if !*fix {
		if len(drifts) > 0 {
			os.Exit(1)
		}
		return
	}

	for _, d := range drifts {
		tx, err := pool.Begin(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("begin transaction")
		}
		_, err = tx.Exec(ctx,
			`UPDATE items SET current_stock = $1, updated_at = now() WHERE id = $2`,
			d.replayed, d.id,
		)
		if err == nil {
			err = tx.Commit(ctx)
		} else {
			_ = tx.Rollback(ctx)
		}
		if err != nil {
			log.Fatal().Err(err).Str("item", d.id).Msg("corregir saldo")
		}
		log.Info().Str("item", d.id).Str("new_stock", d.replayed.String()).Msg("saldo corregido")
	}
}
