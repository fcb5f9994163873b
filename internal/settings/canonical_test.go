package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize_PrunesAndRemaps(t *testing.T) {
	t.Parallel()
	s := Defaults()
	// Enable versions 0 (Shipping), 2 (Development), 3 (Debug), then delete
	// Test and Development.
	for _, v := range []int{3, 0, 2} {
		require.NoError(t, s.Enable(0, KindVersion, v))
	}
	require.NoError(t, s.Versions.Delete(1))
	require.NoError(t, s.Versions.Delete(2))

	pre, _ := s.PreBuild.Add("a")
	gone, _ := s.PreBuild.Add("b")
	require.NoError(t, s.Enable(0, KindPreBuild, pre))
	require.NoError(t, s.Enable(0, KindPreBuild, gone))
	require.NoError(t, s.PreBuild.Delete(gone))

	s.Canonicalize()

	assert.Equal(t, []string{"Shipping", "Debug"}, s.Versions.Names())
	p, _ := s.Platform(0)
	assert.Equal(t, EnabledSet{1, 0}, p.Versions)
	assert.Equal(t, []string{"Debug", "Shipping"}, s.EnabledNames(p, KindVersion))
	assert.Equal(t, EnabledSet{pre}, p.PreBuild)
	assert.Equal(t, 1, s.PreBuild.Len())
}

func TestCanonicalize_SortsDescending(t *testing.T) {
	t.Parallel()
	a, b := Defaults(), Defaults()
	for _, sw := range []int{2, 9, 4} {
		require.NoError(t, a.Enable(0, KindSwitch, sw))
	}
	for _, sw := range []int{9, 4, 2} {
		require.NoError(t, b.Enable(0, KindSwitch, sw))
	}
	assert.False(t, Equal(a, b), "stored order participates in comparison")

	a.Canonicalize()
	b.Canonicalize()
	pa, _ := a.Platform(0)
	assert.Equal(t, EnabledSet{9, 4, 2}, pa.Switches)
	assert.True(t, Equal(a, b))
}

func TestCanonicalize_Platforms(t *testing.T) {
	t.Parallel()
	s := Defaults()
	require.NoError(t, s.Select(3))
	require.NoError(t, s.DeletePlatform(1))
	s.Canonicalize()

	assert.Len(t, s.Platforms(), 4)
	assert.Equal(t, 4, s.PlatformCount())
	p, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "PS4", p.Name)

	require.NoError(t, s.Select(1))
	require.NoError(t, s.DeletePlatform(1))
	s.Canonicalize()
	p, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, "PS4", p.Name, "selection of a removed platform moves to its successor")

	for i := 0; i < s.PlatformCount(); i++ {
		require.NoError(t, s.DeletePlatform(i))
	}
	s.Canonicalize()
	assert.Zero(t, s.PlatformCount())
	assert.Zero(t, s.SelectedPlatform)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	t.Parallel()
	s := Defaults()
	require.NoError(t, s.Enable(2, KindSwitch, 3))
	require.NoError(t, s.Switches.Delete(0))
	s.Canonicalize()
	once := s.Clone()
	s.Canonicalize()
	assert.True(t, Equal(once, s))
}
