package viewmodel

import (
	"testing"
	"time"

	"github.com/Veraticus/grievance-intel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestPriorityBadge(t *testing.T) {
	tests := []struct {
		priority *string
		name     string
		want     Badge
	}{
		{name: "high", priority: ptr("High"), want: Badge{Text: "High", Class: "high"}},
		{name: "low", priority: ptr("Low"), want: Badge{Text: "Low", Class: "low"}},
		{name: "open-ended value", priority: ptr("URGENT"), want: Badge{Text: "URGENT", Class: "urgent"}},
		{name: "absent", priority: nil, want: Badge{Text: "Normal", Class: "medium"}},
		{name: "empty", priority: ptr(""), want: Badge{Text: "Normal", Class: "medium"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriorityBadge(model.Grievance{Priority: tt.priority})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryTag(t *testing.T) {
	assert.Equal(t, "Water Supply", CategoryTag(model.Grievance{Category: ptr("Water Supply")}))
	assert.Equal(t, "Uncategorized", CategoryTag(model.Grievance{}))
	assert.Equal(t, "Uncategorized", CategoryTag(model.Grievance{Category: ptr("")}))
}

func TestShowSchemes(t *testing.T) {
	assert.False(t, ShowSchemes(model.Grievance{}))
	assert.False(t, ShowSchemes(model.Grievance{SuggestedSchemes: []string{}}))
	assert.True(t, ShowSchemes(model.Grievance{SuggestedSchemes: []string{"Scheme A"}}))
}

func TestCard(t *testing.T) {
	g := model.Grievance{
		ID:               "12",
		Title:            "Water shortage",
		Description:      "No water for 3 days",
		Priority:         ptr("High"),
		Category:         ptr("Water Supply"),
		CreatedAt:        time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC),
		SuggestedSchemes: []string{"Scheme A"},
	}

	card := Card(g, "en-US")

	assert.Equal(t, "12", card.ID)
	assert.Equal(t, "Water shortage", card.Title)
	assert.Equal(t, "No water for 3 days", card.Description)
	assert.Equal(t, Badge{Text: "High", Class: "high"}, card.Badge)
	assert.Equal(t, "Water Supply", card.Category)
	assert.Equal(t, "3/5/2024", card.Date)
	assert.True(t, card.ShowSchemes)
	assert.Equal(t, []string{"Scheme A"}, card.Schemes)

	// Derivation never writes back to the record
	card.Schemes[0] = "changed"
	assert.Equal(t, "Scheme A", g.SuggestedSchemes[0])
}

func TestCard_NoSchemes(t *testing.T) {
	card := Card(model.Grievance{SuggestedSchemes: []string{}}, "en-US")

	assert.False(t, card.ShowSchemes)
	assert.Nil(t, card.Schemes)
	assert.Equal(t, "", card.Date)
}

func TestBuildList(t *testing.T) {
	assert.Empty(t, BuildList(nil, "en-US"))

	cards := BuildList([]model.Grievance{
		{ID: "2", Title: "b"},
		{ID: "1", Title: "a"},
	}, "en-US")

	require.Len(t, cards, 2)
	assert.Equal(t, "2", cards[0].ID)
	assert.Equal(t, "1", cards[1].ID)
}

func TestBuildStats(t *testing.T) {
	stats := BuildStats(nil)
	assert.Equal(t, 0, stats.TotalGrievances)
	assert.Equal(t, "0%", stats.ClearanceRate)

	stats = BuildStats([]model.Grievance{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	assert.Equal(t, 3, stats.TotalGrievances)
	assert.Equal(t, "0%", stats.ClearanceRate)
}

func TestBuildSubmitButton(t *testing.T) {
	assert.Equal(t, SubmitButton{Label: "Submit Grievance"}, BuildSubmitButton(false))
	assert.Equal(t, SubmitButton{Label: "Submitting...", Disabled: true}, BuildSubmitButton(true))
}
