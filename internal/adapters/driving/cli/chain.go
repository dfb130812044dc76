package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/ports/driving"
	"github.com/custodia-labs/galley/internal/logger"
)

var (
	chainText   string
	chainJSON   bool
	chainWatch  bool
	chainNoSave bool
	chainType   string
)

var chainCmd = &cobra.Command{
	Use:   "chain [file]",
	Short: "Build lexical chains for a document",
	Long: `Disambiguates every word of a document against the ontology and prints
the selected senses and the lexical chains found.

Reads the file argument, standard input when the argument is "-", or the
--text flag. With --watch the file is re-chained whenever it changes.

Files are converted to prose by their extension: Markdown (.md), HTML
(.html), Word (.docx) and email (.eml) are understood and anything else is
read as plain text. Use --type to name the MIME type explicitly, for
example when reading Markdown from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChain,
}

func init() {
	chainCmd.Flags().StringVarP(&chainText, "text", "t", "", "chain this text instead of a file")
	chainCmd.Flags().BoolVar(&chainJSON, "json", false, "output the run as JSON")
	chainCmd.Flags().BoolVarP(&chainWatch, "watch", "w", false, "re-chain the file whenever it changes")
	chainCmd.Flags().BoolVar(&chainNoSave, "no-save", false, "do not persist the run")
	chainCmd.Flags().StringVar(&chainType, "type", "", "MIME type of the input, e.g. text/markdown")
	rootCmd.AddCommand(chainCmd)
}

func runChain(cmd *cobra.Command, args []string) error {
	svc, err := chainService()
	if err != nil {
		return err
	}

	switch {
	case chainText != "" && len(args) > 0:
		return errors.New("use either a file argument or --text, not both")
	case chainText == "" && len(args) == 0:
		return errors.New("a file argument or --text is required")
	case chainWatch && (len(args) == 0 || args[0] == "-"):
		return errors.New("--watch requires a file argument")
	}

	once := func() error {
		req, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		req.Save = !chainNoSave
		run, err := svc.Chain(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("chaining failed: %w", err)
		}
		return outputRun(cmd, run)
	}

	if err := once(); err != nil {
		return err
	}
	if !chainWatch {
		return nil
	}
	return watchFile(cmd, args[0], once)
}

func readInput(cmd *cobra.Command, args []string) (driving.ChainRequest, error) {
	if chainText != "" {
		return driving.ChainRequest{Name: "text", Text: chainText}, nil
	}
	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return driving.ChainRequest{}, fmt.Errorf("reading stdin: %w", err)
		}
		return driving.ChainRequest{Name: "stdin", Content: data, MIMEType: chainType}, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return driving.ChainRequest{}, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return driving.ChainRequest{Name: args[0], Content: data, MIMEType: chainType}, nil
}

// watchFile calls onChange after every write to path until the command's
// context ends. The parent directory is watched so editors that replace the
// file on save are handled.
func watchFile(cmd *cobra.Command, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", path)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if err := onChange(); err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func outputRun(cmd *cobra.Command, run *domain.Run) error {
	if chainJSON {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	renderRun(cmd.OutOrStdout(), run)
	return nil
}
