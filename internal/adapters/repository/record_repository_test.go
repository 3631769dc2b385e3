package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
)

func newTestRepository(t *testing.T) *RecordRepositoryImpl {
	t.Helper()
	return NewRecordRepository(t.TempDir(), logger.NewNop())
}

func idOf(t *testing.T, r entities.Record) string {
	t.Helper()
	id, ok := r.ID()
	require.True(t, ok)
	switch v := id.(type) {
	case json.Number:
		return v.String()
	case string:
		return v
	}
	t.Fatalf("unexpected id type %T", id)
	return ""
}

func TestListMissingFileIsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	for _, et := range entities.EntityTypes {
		records, err := repo.List(context.Background(), et)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestListCorruptFileIsEmpty(t *testing.T) {
	repo := newTestRepository(t)
	path := repo.Path(entities.EntityTypeWork)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	for _, content := range []string{`[{"id": 1, "title": "tru`, `{"not": "an array"}`, `null`, ``} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		records, err := repo.List(context.Background(), entities.EntityTypeWork)
		require.NoError(t, err)
		assert.Empty(t, records, "content %q", content)
	}
}

func TestListInvalidType(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.List(context.Background(), entities.EntityType("users"))
	assert.ErrorIs(t, err, entities.ErrInvalidEntityType)
}

func TestCreateThenList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, et := range entities.EntityTypes {
		t.Run(string(et), func(t *testing.T) {
			input := entities.Record{"name": "Video Editing", "category": "Production"}
			created, err := repo.Create(ctx, et, input)
			require.NoError(t, err)

			id := idOf(t, created)
			n, err := strconv.ParseInt(id, 10, 64)
			require.NoError(t, err)
			assert.Positive(t, n)
			_, hasID := input["id"]
			assert.False(t, hasID, "input must not be mutated")

			records, err := repo.List(ctx, et)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, "Video Editing", records[0]["name"])
			assert.Equal(t, "Production", records[0]["category"])
			assert.Equal(t, id, idOf(t, records[0]))
			assert.Len(t, records[0], 3)
		})
	}
}

func TestCreateKeepsProvidedID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.EntityTypeSkills, entities.Record{"id": json.Number("7"), "name": "Design"})
	require.NoError(t, err)
	assert.Equal(t, "7", idOf(t, created))

	created, err = repo.Create(ctx, entities.EntityTypeSkills, entities.Record{"id": json.Number("0"), "name": "Zero"})
	require.NoError(t, err)
	assert.NotEqual(t, "0", idOf(t, created))
}

func TestCreateRejectsNil(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Create(context.Background(), entities.EntityTypeWork, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidItem)
}

func TestCreateSameMillisecondGetsDistinctIDs(t *testing.T) {
	repo := newTestRepository(t)
	fixed := time.UnixMilli(1700000000000)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := repo.Create(ctx, entities.EntityTypeWork, entities.Record{"title": "a"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, entities.EntityTypeWork, entities.Record{"title": "b"})
	require.NoError(t, err)

	assert.Equal(t, "1700000000000", idOf(t, first))
	assert.Equal(t, "1700000000001", idOf(t, second))
}

func TestConcurrentCreatesAreNotLost(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, entities.EntityTypeContact, entities.Record{"name": strconv.Itoa(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := repo.List(ctx, entities.EntityTypeContact)
	require.NoError(t, err)
	assert.Len(t, records, 20)

	seen := make(map[string]bool)
	for _, r := range records {
		seen[idOf(t, r)] = true
	}
	assert.Len(t, seen, 20)
}

func seed(t *testing.T, repo *RecordRepositoryImpl, et entities.EntityType, records ...entities.Record) {
	t.Helper()
	require.NoError(t, repo.Replace(context.Background(), et, records))
}

func TestUpdateShallowMerge(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seed(t, repo, entities.EntityTypeWork,
		entities.Record{"id": json.Number("1"), "title": "Campus Event", "description": "Annual", "image": "/images/work/a.jpg"},
		entities.Record{"id": json.Number("2"), "title": "Sports", "description": "Basketball"},
		entities.Record{"id": "3", "title": "Legacy string id"},
	)

	updated, err := repo.Update(ctx, entities.EntityTypeWork, "1", entities.Record{"title": "Campus Event 2024", "category": "Video", "id": json.Number("99")}, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.Record{
		"id":          json.Number("1"),
		"title":       "Campus Event 2024",
		"description": "Annual",
		"image":       "/images/work/a.jpg",
		"category":    "Video",
	}, updated)

	records, err := repo.List(ctx, entities.EntityTypeWork)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, updated, records[0])
	assert.Equal(t, entities.Record{"id": json.Number("2"), "title": "Sports", "description": "Basketball"}, records[1])
	assert.Equal(t, entities.Record{"id": "3", "title": "Legacy string id"}, records[2])

	updated, err = repo.Update(ctx, entities.EntityTypeWork, "3", entities.Record{"title": "Matched loosely"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Matched loosely", updated["title"])
}

func TestUpdateNotFoundLeavesListUnchanged(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seed(t, repo, entities.EntityTypeSkills, entities.Record{"id": json.Number("1"), "name": "Design"})

	before, err := os.ReadFile(repo.Path(entities.EntityTypeSkills))
	require.NoError(t, err)

	_, err = repo.Update(ctx, entities.EntityTypeSkills, "999999", entities.Record{"name": "x"}, nil)
	assert.ErrorIs(t, err, entities.ErrItemNotFound)

	after, err := os.ReadFile(repo.Path(entities.EntityTypeSkills))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateCheckRunsOnMergedRecord(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seed(t, repo, entities.EntityTypeSkills, entities.Record{"id": json.Number("1"), "name": "Design", "category": "Design"})

	before, err := os.ReadFile(repo.Path(entities.EntityTypeSkills))
	require.NoError(t, err)

	var seen entities.Record
	rejected := errors.New("rejected")
	_, err = repo.Update(ctx, entities.EntityTypeSkills, "1", entities.Record{"category": ""}, func(merged entities.Record) error {
		seen = merged
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, entities.Record{"id": json.Number("1"), "name": "Design", "category": ""}, seen)

	after, err := os.ReadFile(repo.Path(entities.EntityTypeSkills))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	called := false
	_, err = repo.Update(ctx, entities.EntityTypeSkills, "999999", entities.Record{"name": "x"}, func(entities.Record) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, entities.ErrItemNotFound)
	assert.False(t, called)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seed(t, repo, entities.EntityTypeSocialLinks,
		entities.Record{"id": json.Number("1"), "platform": "Instagram"},
		entities.Record{"id": json.Number("2"), "platform": "YouTube"},
		entities.Record{"id": json.Number("3"), "platform": "TikTok"},
	)

	require.NoError(t, repo.Delete(ctx, entities.EntityTypeSocialLinks, "2"))

	records, err := repo.List(ctx, entities.EntityTypeSocialLinks)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Instagram", records[0]["platform"])
	assert.Equal(t, "TikTok", records[1]["platform"])

	err = repo.Delete(ctx, entities.EntityTypeSocialLinks, "2")
	assert.ErrorIs(t, err, entities.ErrItemNotFound)

	records, err = repo.List(ctx, entities.EntityTypeSocialLinks)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWriteFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a dir"), 0o644))

	repo := NewRecordRepository(blocker, logger.NewNop())
	_, err := repo.Create(context.Background(), entities.EntityTypeWork, entities.Record{"title": "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrItemNotFound)
}

func TestFileIsIndentedArray(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Create(context.Background(), entities.EntityTypeSkills, entities.Record{"id": json.Number("5"), "name": "Design"})
	require.NoError(t, err)

	raw, err := os.ReadFile(repo.Path(entities.EntityTypeSkills))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 5,\n    \"name\": \"Design\"\n  }\n]", string(raw))
}

func TestCanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, entities.EntityTypeWork)
	assert.ErrorIs(t, err, context.Canceled)
}
