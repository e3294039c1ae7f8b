package handlers

import (
	"apexmotors/internal/config"
	"apexmotors/internal/flash"
	"apexmotors/internal/repos"
	"apexmotors/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AccountHandler   *AccountHandler
	InventoryHandler *InventoryHandler
	ReviewHandler    *ReviewHandler

	Auth    *services.AuthService
	Catalog *services.CatalogService
	Flash   *flash.Store
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	acctRepo := repos.NewAccountRepo(db)
	clsRepo := repos.NewClassificationRepo(db)
	vehRepo := repos.NewVehicleRepo(db)
	revRepo := repos.NewReviewRepo(db)

	authSvc := services.NewAuthService(acctRepo, cfg.TokenSecret)
	catalogSvc := services.NewCatalogService(clsRepo, vehRepo)
	invSvc := services.NewInventoryService(clsRepo, vehRepo)
	revSvc := services.NewReviewService(revRepo)

	fl := flash.NewStore(!cfg.IsDev())

	return &Deps{
		AccountHandler:   &AccountHandler{Auth: authSvc, Flash: fl, Secure: !cfg.IsDev()},
		InventoryHandler: &InventoryHandler{Catalog: catalogSvc, Inv: invSvc, Reviews: revSvc, Flash: fl},
		ReviewHandler:    &ReviewHandler{Reviews: revSvc, Catalog: catalogSvc, Flash: fl},
		Auth:             authSvc,
		Catalog:          catalogSvc,
		Flash:            fl,
	}
}
