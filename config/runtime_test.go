package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	cat, err := BuiltinCatalog()
	require.NoError(t, err)
	rt, err := NewRuntime(cat)
	require.NoError(t, err)
	return rt
}

func TestRuntimeStartsOnFirstPreset(t *testing.T) {
	rt := newTestRuntime(t)
	first, err := rt.Catalog().ByIndex(0)
	require.NoError(t, err)

	assert.Equal(t, first.Name, rt.PresetName())
	assert.Equal(t, first.Config, rt.Current())
}

func TestRuntimeSetGet(t *testing.T) {
	rt := newTestRuntime(t)

	require.NoError(t, rt.Set("enemy_attack_damage", "8"))
	v, err := rt.Get("enemy_attack_damage")
	require.NoError(t, err)
	assert.Equal(t, "8", v)
	assert.Equal(t, 8, rt.Current().EnemyAttackDamage)

	require.NoError(t, rt.Set("block_enabled", "true"))
	assert.True(t, rt.Current().BlockEnabled)

	require.NoError(t, rt.Set("combos", "[{name: Solo, enabled: true, attacks: [{direction: up, telegraph_duration: 0.3}]}]"))
	combos := rt.Current().Combos
	require.Len(t, combos, 1)
	assert.Equal(t, "Solo", combos[0].Name)
}

func TestRuntimeSetErrors(t *testing.T) {
	rt := newTestRuntime(t)
	before := rt.Current()

	assert.ErrorIs(t, rt.Set("parry_power", "1"), ErrUnknownField)
	_, err := rt.Get("parry_power")
	assert.ErrorIs(t, err, ErrUnknownField)

	assert.Error(t, rt.Set("attack_damage", "lots"))
	assert.Error(t, rt.Set("attack_damage", ""))
	assert.Equal(t, before, rt.Current(), "failed edits leave the buffer alone")
}

func TestRuntimeSnapshotValidates(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.Set("player_starting_energy", "0"))

	_, err := rt.Snapshot()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, rt.Set("player_starting_energy", "12"))
	snap, err := rt.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 12, snap.PlayerStartingEnergy)
}

func TestRuntimeSnapshotIsIsolated(t *testing.T) {
	rt := newTestRuntime(t)
	snap, err := rt.Snapshot()
	require.NoError(t, err)

	require.NoError(t, rt.Set("attack_damage", "11"))
	snap.Combos[0].Name = "mine"

	assert.NotEqual(t, 11, snap.AttackDamage)
	assert.NotEqual(t, "mine", rt.Current().Combos[0].Name)
}

func TestRuntimeLoadPresetRestores(t *testing.T) {
	rt := newTestRuntime(t)
	name := rt.Catalog().Names()[3]
	require.NoError(t, rt.LoadPreset(name))
	original := rt.Current()

	require.NoError(t, rt.Set("attack_damage", "13"))
	require.NoError(t, rt.Set("combos", "[]"))
	assert.Equal(t, name, rt.PresetName())

	require.NoError(t, rt.LoadPreset(name))
	assert.Equal(t, original, rt.Current())

	require.NoError(t, rt.LoadPresetIndex(0))
	assert.Equal(t, rt.Catalog().Names()[0], rt.PresetName())
	assert.ErrorIs(t, rt.LoadPreset("nope"), ErrUnknownPreset)
}

func TestRuntimeKeys(t *testing.T) {
	keys := newTestRuntime(t).Keys()
	assert.Contains(t, keys, "parry_window_duration")
	assert.Contains(t, keys, "combos")
	assert.IsIncreasing(t, keys)
}
