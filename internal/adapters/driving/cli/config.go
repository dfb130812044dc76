package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/galley/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	c := settings.Chain
	cmd.Printf("chain.part_of_speech     = %s\n", c.POS)
	cmd.Printf("chain.trim_threshold     = %d\n", c.TrimThreshold)
	cmd.Printf("chain.hyponym_depth      = %d\n", c.HyponymDepth)
	cmd.Printf("chain.link_synonyms      = %t\n", c.LinkSynonyms)
	cmd.Printf("chain.weights.self       = %g\n", c.Weights.Weight(domain.EdgeSelf))
	cmd.Printf("chain.weights.ancestor   = %g\n", c.Weights.Weight(domain.EdgeAncestor))
	cmd.Printf("chain.weights.descendant = %g\n", c.Weights.Weight(domain.EdgeDescendant))
	cmd.Printf("chain.weights.sibling    = %g\n", c.Weights.Weight(domain.EdgeSibling))
	cmd.Printf("tokenizer.stopwords      = %t\n", settings.Stopwords)
	cmd.Printf("ontology.cache_size      = %d\n", settings.CacheSize)
	cmd.Printf("storage.data_dir         = %s\n", settings.DataDir)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	for _, key := range svc.Keys() {
		cmd.Println(key)
	}
	return nil
}
