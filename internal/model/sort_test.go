package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func addedAts(projects []Project) []int64 {
	out := make([]int64, len(projects))
	for i, p := range projects {
		out[i] = p.AddedAt
	}
	return out
}

func TestSortProjects_CaseInsensitive(t *testing.T) {
	input := []Project{
		{ID: "1", Name: "Project", AddedAt: 1},
		{ID: "2", Name: "project", AddedAt: 2},
		{ID: "3", Name: "apple", AddedAt: 3},
		{ID: "4", Name: "Banana", AddedAt: 4},
	}

	got := SortProjects(input)

	require.Len(t, got, 4)
	assert.Equal(t, "apple", got[0].Name)
	assert.Equal(t, "Banana", got[1].Name)
	assert.ElementsMatch(t, []string{"Project", "project"}, names(got[2:]))
}

func TestSortProjects_TieBreakByAddedAt(t *testing.T) {
	input := []Project{
		{ID: "a", Name: "project", AddedAt: 3000},
		{ID: "b", Name: "project", AddedAt: 1000},
		{ID: "c", Name: "project", AddedAt: 2000},
	}

	got := SortProjects(input)

	assert.Equal(t, []int64{1000, 2000, 3000}, addedAts(got))
}

func TestSortProjects_MixedCaseTieBreak(t *testing.T) {
	input := []Project{
		{ID: "a", Name: "Project", AddedAt: 20},
		{ID: "b", Name: "project", AddedAt: 10},
	}

	got := SortProjects(input)

	assert.Equal(t, []string{"b", "a"}, []string{got[0].ID, got[1].ID})
}

func TestSortProjects_DoesNotMutateInput(t *testing.T) {
	input := []Project{
		{ID: "1", Name: "zeta", AddedAt: 1},
		{ID: "2", Name: "alpha", AddedAt: 2},
	}
	snapshot := append([]Project(nil), input...)

	got := SortProjects(input)

	assert.Equal(t, snapshot, input)
	assert.Equal(t, []string{"alpha", "zeta"}, names(got))
}

func TestSortProjects_Empty(t *testing.T) {
	got := SortProjects(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortProjects_Idempotent(t *testing.T) {
	input := []Project{
		{ID: "1", Name: "gamma", AddedAt: 5},
		{ID: "2", Name: "Alpha", AddedAt: 9},
		{ID: "3", Name: "beta", AddedAt: 1},
		{ID: "4", Name: "alpha", AddedAt: 4},
	}

	once := SortProjects(input)
	twice := SortProjects(once)

	assert.Equal(t, once, twice)
}

func TestSortProjects_PermutationInvariant(t *testing.T) {
	input := []Project{
		{ID: "1", Name: "delta", AddedAt: 1},
		{ID: "2", Name: "Charlie", AddedAt: 2},
		{ID: "3", Name: "bravo", AddedAt: 3},
		{ID: "4", Name: "charlie", AddedAt: 4},
		{ID: "5", Name: "Alpha", AddedAt: 5},
		{ID: "6", Name: "プロジェクト", AddedAt: 6},
		{ID: "7", Name: "项目", AddedAt: 7},
	}
	want := SortProjects(input)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]Project(nil), input...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, SortProjects(shuffled))
	}
}

func TestSortProjects_LatinBeforeOtherScripts(t *testing.T) {
	input := []Project{
		{ID: "1", Name: "日本語", AddedAt: 1},
		{ID: "2", Name: "zebra", AddedAt: 2},
		{ID: "3", Name: "Apple", AddedAt: 3},
	}

	got := SortProjects(input)

	assert.Equal(t, []string{"Apple", "zebra", "日本語"}, names(got))
}
