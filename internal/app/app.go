package app

import (
	"context"
	"log"
	"net/http"
	"wager_engine/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx := context.Background()
	r := s.ServiceProvider.Router(ctx)
	defer s.ServiceProvider.DBClient(ctx).Close()

	voided, err := s.ServiceProvider.WagerService(ctx).RecoverOpen(ctx)
	if err != nil {
		return err
	}
	if voided > 0 {
		log.Printf("refunded %d wagers left open by the previous run", voided)
	}

	log.Printf("starting wager engine at %s", s.ServiceProvider.HTTPCfg().Address())
	return http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
}
