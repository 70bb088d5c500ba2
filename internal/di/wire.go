//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"StockDash/pkg/config"
	"StockDash/pkg/server"
)

// InitializeApp builds the whole application from config.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
