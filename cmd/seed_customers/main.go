// seed_customers escribe clientes de demostración en la hoja configurada (SHEETS_BACKEND).
//
// Uso: go run ./cmd/seed_customers [--force]
// Sin --force no toca una hoja que ya tiene clientes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cs-portfolio/internal/domain/entity"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/backend"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
	"github.com/jhoicas/cs-portfolio/pkg/config"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
)

type demo struct {
	name, cvr, commercial, admin string
	forecast, actual             int64
	firstTripMonthsAgo           int
}

var demos = []demo{
	{"Acme A/S", "12345678", "Mette Hansen", "Lars Jensen", 42000, 40000, 14},
	{"Nordic ApS", "87654321", "Mette Hansen", "Sofie Nielsen", 18000, 6500, 6},
	{"Retail X", "", "Jonas Poulsen", "Anne Larsen", 9000, 900, 8},
}

func main() {
	force := len(os.Args) > 1 && os.Args[1] == "--force"

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_customers"})

	ctx := context.Background()
	store, closeStore, err := backend.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir hoja: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	gw := sheets.NewGateway(store, cfg.Sheets.Worksheet, log)
	existing, err := gw.LoadAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer hoja: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 && !force {
		fmt.Fprintf(os.Stderr, "La hoja %q ya tiene %d clientes; use --force para sobrescribir\n", gw.Worksheet(), len(existing))
		os.Exit(1)
	}

	if err := gw.SaveAll(ctx, demoCustomers(time.Now())); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir hoja: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escritos %d clientes en %q\n", len(demos), gw.Worksheet())
}

func demoCustomers(now time.Time) []*entity.Customer {
	stamp := now.UTC().Format(entity.UpdatedAtLayout)
	out := make([]*entity.Customer, 0, len(demos))
	for _, d := range demos {
		trip := entity.NewDate(now.AddDate(0, -d.firstTripMonthsAgo, 0))
		out = append(out, &entity.Customer{
			ID:                    uuid.New().String(),
			Name:                  d.name,
			CVR:                   d.cvr,
			CommercialContact:     d.commercial,
			AdminContact:          d.admin,
			ForecastYearlyRevenue: decimal.NewFromInt(d.forecast),
			ActualRevenueToDate:   decimal.NewFromInt(d.actual),
			AccountCreatedDate:    entity.NewDate(now.AddDate(0, -d.firstTripMonthsAgo-1, 0)),
			FirstTripDate:         trip,
			UpdatedAt:             stamp,
		})
	}
	return out
}
