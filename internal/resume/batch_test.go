package resume

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatch_DistinctPaths(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, WithClock(fixedClock), WithConcurrency(3))

	jobs := make([]BatchJob, 6)
	for i := range jobs {
		jobs[i] = BatchJob{Profile: validProfile("Marcus Reed")}
	}

	results, err := svc.GenerateBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	seen := map[string]bool{}
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, "Marcus Reed", r.ProfileName)
		assert.False(t, seen[r.Path], "duplicate path %s", r.Path)
		seen[r.Path] = true

		info, err := os.Stat(r.Path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(jobs))
}

func TestGenerateBatch_FailuresAreIsolated(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, WithGenerator(&stubGenerator{summary: "Short."}))

	bad := validProfile("Broken Profile")
	bad.Contact.Email = "not-an-email"

	results, err := svc.GenerateBatch(context.Background(), []BatchJob{
		{Profile: validProfile("Ana Torres"), Filename: "ana"},
		{Profile: bad},
		{Profile: validProfile("Sam Lee"), Filename: "sam", Enrich: true},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(dir, "ana.docx"), results[0].Path)

	var gf *GenerationFailed
	require.ErrorAs(t, results[1].Err, &gf)
	assert.Equal(t, "Broken Profile", gf.ProfileName)
	assert.Empty(t, results[1].Path)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, filepath.Join(dir, "sam.docx"), results[2].Path)
}

func TestGenerateBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(t.TempDir())
	results, err := svc.GenerateBatch(ctx, []BatchJob{{Profile: validProfile("Marcus Reed")}})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestGenerateBatch_Empty(t *testing.T) {
	svc := NewService(t.TempDir())
	results, err := svc.GenerateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
