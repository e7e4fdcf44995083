package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/memory"
	"github.com/tagus/supplysense/pkg/ontology"
)

func factoryGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	g := ontology.NewGraph()
	require.NoError(t, g.AddEntity(&ontology.Location{
		ID: "loc-1", Name: "Central Warehouse", Type: ontology.LocationWarehouse, CapacityM3: 1000,
	}))
	return g
}

func TestNewConstructsEachStrategy(t *testing.T) {
	g := factoryGraph(t)

	for _, strategy := range Strategies() {
		t.Run(strategy, func(t *testing.T) {
			a, err := New(strategy, g, WithLogger(logging.Noop()))
			require.NoError(t, err)
			assert.Equal(t, strategy, a.Name())

			result, err := a.ProcessQuery(context.Background(), "Where is Central Warehouse located?")
			require.NoError(t, err)
			assert.Equal(t, strategy, result.Strategy)
			assert.NotEmpty(t, result.Answer)
		})
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New("clairvoyant", factoryGraph(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestNewWorldModelUsesProvidedMemory(t *testing.T) {
	g := factoryGraph(t)
	buf := memory.NewContextBuffer(5)

	a, err := New(StrategyWorldModel, g, WithLogger(logging.Noop()), WithMemory(buf))
	require.NoError(t, err)

	_, err = a.ProcessQuery(context.Background(), "inventory levels")
	require.NoError(t, err)

	entries, err := buf.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	content := []byte(`
strategy: goal_based
logging:
  level: warn
memory:
  backend: inprocess
  max_entries: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "goal_based", settings.Strategy)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, 5, settings.Memory.MaxEntries)

	a, err := settings.Build(factoryGraph(t))
	require.NoError(t, err)
	assert.Equal(t, StrategyGoalBased, a.Name())
}

func TestLoadSettingsDefaultsStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, StrategyReflex, settings.Strategy)
}

func TestSettingsBuildRejectsUnknownBackend(t *testing.T) {
	settings := &Settings{Strategy: StrategyReflex}
	settings.Memory.Backend = "carrier-pigeon"

	_, err := settings.Build(factoryGraph(t))
	assert.Error(t, err)
}

func TestSettingsBuildRejectsBadLogLevel(t *testing.T) {
	settings := &Settings{Strategy: StrategyReflex}
	settings.Logging.Level = "chatty"

	_, err := settings.Build(factoryGraph(t))
	assert.Error(t, err)
}
