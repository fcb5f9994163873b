package persist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/uat-helper/internal/settings"
)

func TestDocument_Lifecycle(t *testing.T) {
	t.Parallel()
	engine, backend, _ := newTestEngine(t)

	doc := Open(engine, testFile)
	assert.True(t, doc.LoadResult().Defaulted)
	assert.False(t, doc.Dirty())

	require.NoError(t, doc.Settings().Enable(0, settings.KindVersion, 1))
	assert.True(t, doc.Dirty())

	diff, err := doc.Diff()
	require.NoError(t, err)
	assert.Contains(t, diff, "+            \"Enabled Versions\": [")
	assert.Contains(t, diff, testFile+" (saved)")

	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty())
	diff, err = doc.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)

	_, err = backend.Read(testFile)
	require.NoError(t, err)

	doc.Settings().RootPath = "Z:/"
	assert.True(t, doc.Dirty())
	doc.Revert()
	assert.False(t, doc.Dirty())
	assert.Empty(t, doc.Settings().RootPath)
	assert.False(t, doc.LoadResult().Defaulted)
}

func TestDocument_SaveFailureKeepsDirty(t *testing.T) {
	t.Parallel()
	engine, backend, _ := newTestEngine(t)
	doc := Open(engine, testFile)
	doc.Settings().ProjectPath = "C:/G/G.uproject"
	require.NoError(t, doc.Settings().Versions.Delete(0))

	backend.WriteErr = errors.New("read-only")
	var wf *WriteFailure
	require.ErrorAs(t, doc.Save(), &wf)
	assert.True(t, doc.Dirty())

	// The failed save still compacted the live settings.
	assert.Equal(t, 3, doc.Settings().Versions.Len())
	assert.False(t, doc.Settings().Versions.Deleted(0))
	assert.Equal(t, []string{"Test", "Development", "Debug"}, doc.Settings().Versions.Names())
}

func TestDocument_SaveAs(t *testing.T) {
	t.Parallel()
	engine, backend, _ := newTestEngine(t)
	doc := Open(engine, testFile)
	doc.Settings().RootPath = "C:/UE/"
	require.NoError(t, doc.SaveAs("UATHelperCopy.json"))
	assert.Equal(t, "UATHelperCopy.json", doc.File())
	assert.False(t, doc.Dirty())
	_, err := backend.Read("UATHelperCopy.json")
	assert.NoError(t, err)
}

func TestCanonicalDiff(t *testing.T) {
	t.Parallel()
	engine, backend, _ := newTestEngine(t)
	require.NoError(t, engine.Save(testFile, settings.Defaults()))
	diff, err := engine.CanonicalDiff(testFile)
	require.NoError(t, err)
	assert.Empty(t, diff, "a saved file is canonical")

	require.NoError(t, backend.Write(testFile, []byte(`{"Version": 1, "Platform Settings": {"Win64": {}}}`)))
	diff, err = engine.CanonicalDiff(testFile)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- "+testFile)
	assert.Contains(t, diff, `+    "Root Path": "",`)

	_, err = engine.CanonicalDiff("UATHelperNope.json")
	assert.Error(t, err)
}
