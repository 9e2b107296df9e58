// Package viewmodel derives display values from grievance records. Every
// function here is pure; nothing derived is stored back on a record.
package viewmodel

import (
	"strings"

	"github.com/Veraticus/grievance-intel/internal/model"
)

// Display fallbacks.
const (
	FallbackPriorityText  = "Normal"
	FallbackPriorityClass = "medium"
	FallbackCategory      = "Uncategorized"
	EmptyListText         = "No grievances found."
	SchemesHeading        = "Suggested Welfare Schemes:"
)

// Badge is the priority badge shown next to a grievance title.
type Badge struct {
	Text  string
	Class string
}

// GrievanceCard is one rendered list entry.
type GrievanceCard struct {
	ID          string
	Title       string
	Description string
	Category    string
	Date        string
	Badge       Badge
	Schemes     []string
	ShowSchemes bool
}

// PriorityBadge returns the badge text and style class for g.
func PriorityBadge(g model.Grievance) Badge {
	if g.Priority == nil || *g.Priority == "" {
		return Badge{Text: FallbackPriorityText, Class: FallbackPriorityClass}
	}
	return Badge{
		Text:  *g.Priority,
		Class: strings.ToLower(*g.Priority),
	}
}

// CategoryTag returns the category label for g.
func CategoryTag(g model.Grievance) string {
	if g.Category == nil || *g.Category == "" {
		return FallbackCategory
	}
	return *g.Category
}

// ShowSchemes reports whether the schemes block is rendered for g.
func ShowSchemes(g model.Grievance) bool {
	return len(g.SuggestedSchemes) > 0
}

// Card derives the display values for a single record.
func Card(g model.Grievance, locale string) GrievanceCard {
	card := GrievanceCard{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    CategoryTag(g),
		Date:        FormatDate(g.CreatedAt, locale),
		Badge:       PriorityBadge(g),
		ShowSchemes: ShowSchemes(g),
	}
	if card.ShowSchemes {
		card.Schemes = append([]string(nil), g.SuggestedSchemes...)
	}
	return card
}

// BuildList derives cards for every record, in order.
func BuildList(grievances []model.Grievance, locale string) []GrievanceCard {
	cards := make([]GrievanceCard, 0, len(grievances))
	for _, g := range grievances {
		cards = append(cards, Card(g, locale))
	}
	return cards
}
