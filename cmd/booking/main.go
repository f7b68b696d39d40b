package main

import (
	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	"campreserv/internal/availability"
	draftshandler "campreserv/internal/drafts/handler"
	draftsrepository "campreserv/internal/drafts/repository"
	draftsservice "campreserv/internal/drafts/service"
	draftsvalidator "campreserv/internal/drafts/validator"
	"campreserv/internal/guests"
	"campreserv/internal/pricing"
	"campreserv/pkg/app"
	"campreserv/pkg/config"
	"campreserv/pkg/contracts"
)

const ServiceName = "booking"

// handlers mounts every handler of this service on one router.
type handlers []contracts.Handler

func (hs handlers) RegisterRoutes(router *httprouter.Router) {
	for _, h := range hs {
		h.RegisterRoutes(router)
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetBackendClients()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Booking service")

	draftService, draftValidator := initDrafts(cfg)
	defer draftService.Stop()

	appHandlers := handlers{
		draftshandler.NewDraftHandler(draftService, draftValidator, cfg),
		availability.NewHandler(availability.NewService(cfg.Client.SiteClient, cfg), cfg.Log),
		pricing.NewHandler(pricing.NewService(cfg.Client.SiteClient, cfg.Client.QuoteClient, cfg), cfg.Log),
		guests.NewHandler(guests.NewService(cfg.Client.GuestClient, cfg), cfg.Log),
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, appHandlers)
	serverApp.Run()
}

func initDrafts(cfg *config.Config) (draftsservice.DraftService, *draftsvalidator.DraftValidator) {
	draftRepo := draftsrepository.NewMongoDraftRepository(cfg)
	draftService := draftsservice.NewDraftService(draftRepo, cfg)
	draftValidator := draftsvalidator.NewDraftValidator(cfg.Log)

	cfg.Log.Info("Draft service initialized", "database", cfg.MongoDatabaseName)
	return draftService, draftValidator
}
