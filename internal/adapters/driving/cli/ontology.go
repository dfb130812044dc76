package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/tomlfile"
	"github.com/custodia-labs/galley/internal/core/domain"
)

var (
	sensesPOS  string
	sensesJSON bool
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Manage the sense inventory",
}

var ontologyImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the ontology with a TOML sense file",
	Long: `Replaces the stored ontology with the synsets in a TOML file.
Each [[synset]] table names its id, offset, pos, lemmas, gloss, hypernyms
and instance_hypernyms. Child relations are derived.`,
	Args: cobra.ExactArgs(1),
	RunE: runOntologyImport,
}

var ontologySensesCmd = &cobra.Command{
	Use:   "senses [word]",
	Short: "List the candidate senses of a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runOntologySenses,
}

func init() {
	ontologySensesCmd.Flags().StringVarP(&sensesPOS, "pos", "p", string(domain.Noun), "part of speech (n, v, a, r)")
	ontologySensesCmd.Flags().BoolVar(&sensesJSON, "json", false, "output senses as JSON")
	ontologyCmd.AddCommand(ontologyImportCmd)
	ontologyCmd.AddCommand(ontologySensesCmd)
	rootCmd.AddCommand(ontologyCmd)
}

func runOntologyImport(cmd *cobra.Command, args []string) error {
	svc, err := ontologyService()
	if err != nil {
		return err
	}

	senses, err := tomlfile.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read ontology: %w", err)
	}
	n, err := svc.Import(cmd.Context(), senses)
	if err != nil {
		return fmt.Errorf("failed to import ontology: %w", err)
	}
	cmd.Printf("Imported %d senses from %s\n", n, args[0])
	return nil
}

func runOntologySenses(cmd *cobra.Command, args []string) error {
	svc, err := ontologyService()
	if err != nil {
		return err
	}

	pos := domain.PartOfSpeech(sensesPOS)
	if !pos.IsValid() {
		return fmt.Errorf("invalid part of speech %q", sensesPOS)
	}
	senses, err := svc.Lookup(cmd.Context(), args[0], pos)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if sensesJSON {
		data, err := json.MarshalIndent(senses, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal senses: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	renderSenses(cmd.OutOrStdout(), args[0], senses)
	return nil
}
