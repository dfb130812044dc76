// Command galley builds lexical chains from text documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/galley/internal/adapters/driven/config/file"
	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/cached"
	"github.com/custodia-labs/galley/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/galley/internal/adapters/driving/cli"
	"github.com/custodia-labs/galley/internal/core/ports/driven"
	"github.com/custodia-labs/galley/internal/core/services"
	"github.com/custodia-labs/galley/internal/logger"
	"github.com/custodia-labs/galley/internal/normalisers"
	"github.com/custodia-labs/galley/internal/tokenizer"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	if err := cli.Execute(ctx, buildServices); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// buildServices wires the adapters behind the driving ports.
func buildServices(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", configStore.Path(), err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Debug("Using database %s", store.Path())

	var ontology driven.Ontology = store.Ontology()
	if settings.CacheSize > 0 {
		c, err := cached.New(ontology, settings.CacheSize)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		ontology = c
	}

	tok := tokenizer.New(tokenizer.WithStopwords(settings.Stopwords))
	chainSvc, err := services.NewChainService(ontology, tok, normalisers.NewDefaultRegistry(), store.RunStore(), settings.Chain)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &cli.Services{
		Chain:    chainSvc,
		Ontology: services.NewOntologyService(ontology, store.Ontology()),
		Settings: settingsSvc,
		Close:    store.Close,
	}, nil
}
