package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
)

// Grievance is the client's read-only copy of a backend grievance record.
type Grievance struct {
	CreatedAt        time.Time
	Category         *string
	Priority         *string
	ConfidenceScore  *float64
	ID               string
	Title            string
	Description      string
	Status           string
	Location         string
	SuggestedSchemes []string
}

// timestampLayouts lists the layouts accepted for created_at. The backend
// emits naive ISO timestamps (no zone), which time.Time's JSON decoding rejects.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type grievanceJSON struct {
	ID               json.RawMessage `json:"id"`
	Category         *string         `json:"category"`
	Priority         *string         `json:"priority"`
	ConfidenceScore  *float64        `json:"confidence_score"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	Location         *string         `json:"location"`
	CreatedAt        string          `json:"created_at"`
	SuggestedSchemes []string        `json:"suggested_schemes"`
}

// UnmarshalJSON decodes a backend record. Numeric and string ids are both
// accepted; created_at may be zoned or naive. An unrecognized created_at
// leaves CreatedAt zero.
func (g *Grievance) UnmarshalJSON(data []byte) error {
	var raw grievanceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	// The date is display-only; an unparseable one must not sink the record
	createdAt, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		common.LogDebug("Ignoring unparseable grievance timestamp", common.Fields{
			"id":         id,
			"created_at": raw.CreatedAt,
		})
		createdAt = time.Time{}
	}

	*g = Grievance{
		ID:               id,
		Title:            raw.Title,
		Description:      raw.Description,
		Category:         raw.Category,
		Priority:         raw.Priority,
		ConfidenceScore:  raw.ConfidenceScore,
		Status:           raw.Status,
		CreatedAt:        createdAt,
		SuggestedSchemes: raw.SuggestedSchemes,
	}
	if raw.Location != nil {
		g.Location = *raw.Location
	}
	return nil
}

// MarshalJSON encodes the record in the backend's wire shape.
func (g Grievance) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(g.ID)
	if err != nil {
		return nil, err
	}

	out := grievanceJSON{
		ID:               id,
		Title:            g.Title,
		Description:      g.Description,
		Category:         g.Category,
		Priority:         g.Priority,
		ConfidenceScore:  g.ConfidenceScore,
		Status:           g.Status,
		SuggestedSchemes: g.SuggestedSchemes,
	}
	if g.Location != "" {
		loc := g.Location
		out.Location = &loc
	}
	if !g.CreatedAt.IsZero() {
		out.CreatedAt = g.CreatedAt.Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// ParseTimestamp parses a backend timestamp. An empty string yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid grievance id %s: %w", raw, err)
	}
	return n.String(), nil
}
