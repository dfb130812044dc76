package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCmd_Defaults(t *testing.T) {
	out, err := execute(t, newTestServices(t), "", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "chain.trim_threshold     = 100")
	assert.Contains(t, out, "chain.hyponym_depth      = 5")
	assert.Contains(t, out, "chain.link_synonyms      = false")
	assert.Contains(t, out, "chain.weights.sibling    = 1")
	assert.Contains(t, out, "ontology.cache_size      = 4096")
}

func TestConfigSetCmd(t *testing.T) {
	svc := newTestServices(t)

	out, err := execute(t, svc, "", "config", "set", "chain.trim_threshold", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "chain.trim_threshold = 7")

	out, err = execute(t, svc, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "chain.trim_threshold     = 7")
}

func TestConfigSetCmd_Rejects(t *testing.T) {
	_, err := execute(t, newTestServices(t), "", "config", "set", "chain.trim_threshold", "many")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set chain.trim_threshold")
}

func TestConfigKeysCmd(t *testing.T) {
	out, err := execute(t, newTestServices(t), "", "config", "keys")

	require.NoError(t, err)
	keys := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, keys, 11)
	assert.Equal(t, "chain.hyponym_depth", keys[0])
}
