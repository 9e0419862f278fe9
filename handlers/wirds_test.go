package handlers

import (
	"testing"

	"muhasab-server/shared"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePractices(t *testing.T) {
	tcs := []struct {
		name string
		in   shared.WirdPractice
		want shared.WirdPractice
	}{
		{
			name: "progress below target",
			in:   shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 3},
			want: shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 3, IsCompleted: false},
		},
		{
			name: "progress meets target",
			in:   shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 5},
			want: shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 5, IsCompleted: true},
		},
		{
			name: "progress exceeds target",
			in:   shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 9},
			want: shared.WirdPractice{Id: "p1", Name: "Quran", Target: 5, Completed: 9, IsCompleted: true},
		},
		{
			name: "zero target clamped to one",
			in:   shared.WirdPractice{Id: "p1", Name: "Dua", Target: 0, Completed: 0},
			want: shared.WirdPractice{Id: "p1", Name: "Dua", Target: 1, Completed: 0, IsCompleted: false},
		},
		{
			name: "negative completed clamped to zero",
			in:   shared.WirdPractice{Id: "p1", Name: "Dua", Target: 1, Completed: -3},
			want: shared.WirdPractice{Id: "p1", Name: "Dua", Target: 1, Completed: 0, IsCompleted: false},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizePractices([]shared.WirdPractice{tc.in})
			assert.Equal(t, []shared.WirdPractice{tc.want}, got)
		})
	}
}

func TestNormalizePractices_AssignsIds(t *testing.T) {
	got := normalizePractices([]shared.WirdPractice{{Name: "Dhikr", Target: 10}})
	assert.NotEmpty(t, got[0].Id)
}

func TestSetPracticeProgress(t *testing.T) {
	practices := []shared.WirdPractice{
		{Id: "p1", Name: "Quran", Target: 5, Completed: 0},
		{Id: "p2", Name: "Dhikr", Target: 10, Completed: 2},
	}

	updated, found := setPracticeProgress(practices, "p2", 10)
	assert.True(t, found)
	assert.Equal(t, 10, updated[1].Completed)
	assert.True(t, updated[1].IsCompleted)

	// untouched practice keeps its state
	assert.Equal(t, 0, updated[0].Completed)
	assert.False(t, updated[0].IsCompleted)

	_, found = setPracticeProgress(practices, "missing", 1)
	assert.False(t, found)
}

func TestHasPracticeId(t *testing.T) {
	practices := []shared.WirdPractice{
		{Id: "p1", Name: "Quran", Target: 5},
		{Id: "p2", Name: "Dhikr", Target: 10},
	}

	tcs := []struct {
		name string
		id   string
		want bool
	}{
		{
			name: "already on the entry",
			id:   "p2",
			want: true,
		},
		{
			name: "fresh id",
			id:   "p3",
			want: false,
		},
		{
			name: "empty id",
			id:   "",
			want: false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hasPracticeId(practices, tc.id))
		})
	}
}

func TestPracticeFromSuggestion(t *testing.T) {
	practice := practiceFromSuggestion(shared.WirdSuggestion{
		Id:       "s1",
		Name:     "Morning dhikr",
		Category: "dhikr",
		Target:   10,
		Unit:     "minutes",
	})

	assert.Equal(t, "s1", practice.Id)
	assert.Equal(t, "Morning dhikr", practice.Name)
	assert.Equal(t, 10, practice.Target)
	assert.Equal(t, 0, practice.Completed)
	assert.False(t, practice.IsCompleted)

	// missing fields fall back to defaults and a fresh id
	practice = practiceFromSuggestion(shared.WirdSuggestion{Name: "Dua"})
	assert.NotEmpty(t, practice.Id)
	assert.Equal(t, "dhikr", practice.Category)
	assert.Equal(t, 1, practice.Target)
	assert.Equal(t, "times", practice.Unit)
}
