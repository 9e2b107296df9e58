package model

import (
	"strings"

	"github.com/Veraticus/grievance-intel/internal/common"
)

// Draft is the uncommitted form state for a new grievance.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate reports the first required field that is blank.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return common.ErrTitleRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		return common.ErrDescriptionRequired
	}
	return nil
}

// IsEmpty returns true if neither field has been typed into.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Description == ""
}
