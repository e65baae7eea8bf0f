// seed importa entradas de material desde un CSV (';', UTF-8 o Windows-1254) o un XLSX.
//
// Uso: go run ./cmd/seed <archivo.csv|archivo.xlsx>
// Usa la misma configuración que la API (STORE_DRIVER, STORE_PATH, DATABASE_URL, DEFAULT_TAX_RATE...).
// Cada fila pasa por el registro normal de entradas; las filas inválidas se informan y se omiten.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stok-takip/internal/application/inventory"
	"github.com/jhoicas/stok-takip/internal/bootstrap"
	"github.com/jhoicas/stok-takip/internal/infrastructure/importer"
	"github.com/jhoicas/stok-takip/pkg/config"
	"github.com/jhoicas/stok-takip/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <archivo.csv|archivo.xlsx>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")

	defaultTax, err := decimal.NewFromString(cfg.Ledger.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Msg("DEFAULT_TAX_RATE inválido")
	}

	rows, err := importer.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer archivo")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}

	ledger := inventory.NewLedgerUseCase(backend.TxRunner, defaultTax, log)
	summary, err := importer.Import(ctx, ledger, rows, log)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
	}

	for _, f := range summary.Failed {
		fmt.Fprintf(os.Stderr, "línea %d: %v\n", f.Line, f.Err)
	}
	fmt.Printf("Importadas %d de %d filas desde %s (%d con error)\n",
		summary.Imported, len(rows), path, len(summary.Failed))

	if cerr := backend.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("cerrar almacenamiento")
	}
	if len(summary.Failed) > 0 || err != nil {
		stop()
		os.Exit(1)
	}
}
