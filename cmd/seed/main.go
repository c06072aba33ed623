// Seed de datos de demostración: una empresa con sus tres roles y un catálogo
// pequeño. Pensado para levantar un entorno local utilizable en segundos.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyUC := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool))
	itemUC := usecase.NewItemUseCase(postgres.NewItemRepository(pool))
	authUC := auth.NewAuthUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewCompanyRepository(pool),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)

	company, err := companyUC.Create("Ferretería Demo")
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa demo")
	}
	log.Info().Str("company_id", company.ID).Msg("empresa demo creada")

	users := []dto.RegisterRequest{
		{Email: "admin@demo.local", Password: "admin12345", CompanyID: company.ID, Name: "Admin Demo", Role: "admin"},
		{Email: "editor@demo.local", Password: "editor12345", CompanyID: company.ID, Name: "Editor Demo", Role: "editor"},
		{Email: "bodega@demo.local", Password: "bodega12345", CompanyID: company.ID, Name: "Bodega Demo", Role: "submitter"},
	}
	for _, u := range users {
		if _, err := authUC.RegisterUser(u); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("crear usuario demo")
		}
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("usuario demo creado")
	}

	items := []dto.CreateItemRequest{
		{SKU: "TOR-M6", Description: "Tornillo hexagonal M6", Category: "Ferretería", Location: "A-1", Quantity: 500, MinQuantity: 100, UnitCost: decimal.RequireFromString("0.15")},
		{SKU: "CBL-UTP5", Description: "Cable UTP categoría 5 (rollo 305m)", Category: "Eléctrico", Location: "B-2", Quantity: 12, MinQuantity: 4, UnitCost: decimal.RequireFromString("89.90")},
		{SKU: "PNT-BLA-4L", Description: "Pintura blanca mate 4L", Category: "Pinturas", Location: "C-1", Quantity: 30, MinQuantity: 10, UnitCost: decimal.RequireFromString("21.50")},
		{SKU: "GUA-NIT-M", Description: "Guantes de nitrilo talla M (caja 100)", Category: "Seguridad", Location: "D-3", Quantity: 18, MinQuantity: 20, UnitCost: decimal.RequireFromString("7.80")},
	}
	for _, it := range items {
		if _, err := itemUC.Create(company.ID, it); err != nil {
			log.Fatal().Err(err).Str("sku", it.SKU).Msg("crear artículo demo")
		}
		log.Info().Str("sku", it.SKU).Msg("artículo demo creado")
	}

	log.Info().Msg("seed completado")
}
