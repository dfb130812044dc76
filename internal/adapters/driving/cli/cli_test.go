package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/memory"
	"github.com/custodia-labs/galley/internal/adapters/driven/ontology/tomlfile"
	memstore "github.com/custodia-labs/galley/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/galley/internal/core/domain"
	"github.com/custodia-labs/galley/internal/core/services"
	"github.com/custodia-labs/galley/internal/normalisers"
	"github.com/custodia-labs/galley/internal/tokenizer"
)

var sampleOntology = filepath.Join("..", "..", "..", "..", "testdata", "riverbank.toml")

// newTestServices builds services over in-memory adapters loaded with the
// sample ontology.
func newTestServices(t *testing.T) *Services {
	t.Helper()
	senses, err := tomlfile.ReadFile(sampleOntology)
	require.NoError(t, err)
	onto, err := memory.FromSenses(senses)
	require.NoError(t, err)

	settings := services.NewSettingsService(memstore.NewConfigStore())
	chain, err := services.NewChainService(onto, tokenizer.New(), normalisers.NewDefaultRegistry(), memstore.NewRunStore(), domain.DefaultChainSettings())
	require.NoError(t, err)

	return &Services{
		Chain:    chain,
		Ontology: services.NewOntologyService(onto, onto),
		Settings: settings,
	}
}

// execute runs the root command with args against svc and returns the
// combined output. Flag variables are reset afterwards.
func execute(t *testing.T, svc *Services, stdin string, args ...string) (string, error) {
	t.Helper()
	active = svc

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		active = nil
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	chainText = ""
	chainJSON = false
	chainWatch = false
	chainNoSave = false
	chainType = ""
	sensesPOS = string(domain.Noun)
	sensesJSON = false
	runsLimit = 20
	runsShowRaw = false
	verbose = false
}
