// Package cli implements the galley command-line interface with cobra.
//
// Commands call the driving ports only. Services are built lazily by the
// Factory passed to Execute, after flags such as --config-dir are parsed.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/galley/internal/core/ports/driving"
	"github.com/custodia-labs/galley/internal/logger"
)

// Services bundles the driving ports the commands use.
type Services struct {
	Chain    driving.ChainService
	Ontology driving.OntologyService
	Settings driving.SettingsService

	// Close releases resources held by the services. Optional.
	Close func() error
}

// Factory builds services for a configuration directory.
type Factory func(configDir string) (*Services, error)

var (
	version   = "dev"
	verbose   bool
	configDir string

	factory Factory
	active  *Services
)

var rootCmd = &cobra.Command{
	Use:   "galley",
	Short: "Lexical chaining over text documents",
	Long: `Galley disambiguates every noun in a document against a lexical ontology
and groups semantically related words into lexical chains.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: closeServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.galley)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with output on stdout. The factory is
// called once before the first command runs.
func Execute(ctx context.Context, f Factory) error {
	factory = f
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if active != nil || factory == nil {
		return nil
	}
	s, err := factory(configDir)
	if err != nil {
		return err
	}
	active = s
	return nil
}

func closeServices(_ *cobra.Command, _ []string) error {
	if active == nil || active.Close == nil {
		return nil
	}
	err := active.Close()
	active = nil
	return err
}

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")

func chainService() (driving.ChainService, error) {
	if active == nil || active.Chain == nil {
		return nil, errNotConfigured
	}
	return active.Chain, nil
}

func ontologyService() (driving.OntologyService, error) {
	if active == nil || active.Ontology == nil {
		return nil, errNotConfigured
	}
	return active.Ontology, nil
}

func settingsService() (driving.SettingsService, error) {
	if active == nil || active.Settings == nil {
		return nil, errNotConfigured
	}
	return active.Settings, nil
}
