// Package app wires the client together: local storage, token store,
// API gateway and the state containers. One App is constructed at process
// start and injected into the view layer; containers live for the whole
// process regardless of which views come and go.
package app

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"stellarburgers/internal/api"
	"stellarburgers/internal/config"
	"stellarburgers/internal/state"
	"stellarburgers/internal/store"
	"stellarburgers/internal/token"
)

// App is the assembled client core.
type App struct {
	Cfg *config.Config
	Log *zap.Logger

	Local  *store.LocalStore
	Tokens *token.Store
	API    *api.Client

	Catalog     *state.Catalog
	Constructor *state.Constructor
	Orders      *state.Orders
	Feed        *state.Feed
	Session     *state.Session
}

// New builds the full container graph from configuration.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	local, err := store.NewLocalStore(filepath.Join(cfg.DataDir, "local.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	tokens, err := token.NewStore(local)
	if err != nil {
		local.Close()
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.APITimeout(), tokens, log)

	return &App{
		Cfg:         cfg,
		Log:         log,
		Local:       local,
		Tokens:      tokens,
		API:         client,
		Catalog:     state.NewCatalog(client),
		Constructor: state.NewConstructor(),
		Orders:      state.NewOrders(client),
		Feed:        state.NewFeed(client),
		Session:     state.NewSession(client, local),
	}, nil
}

// Close releases the App's resources at process exit.
func (a *App) Close() error {
	return a.Local.Close()
}
