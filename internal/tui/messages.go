package tui

// field identifies the focused form control.
type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldDescription
)

func (f field) next() field {
	switch f {
	case fieldTitle:
		return fieldDescription
	default:
		return fieldTitle
	}
}

func (f field) prev() field {
	switch f {
	case fieldDescription:
		return fieldTitle
	default:
		return fieldDescription
	}
}

// Form and banner copy.
const (
	appTitle               = "Citizen Grievance Intel"
	appSubtitle            = "AI-assisted grievance redressal"
	formHeading            = "Submit a Grievance"
	titleLabel             = "Title"
	descriptionLabel       = "Description"
	titlePlaceholder       = "e.g., Water shortage in Sector 4"
	descriptionPlaceholder = "Describe the issue in detail..."
	listHeading            = "Recent Grievances"
	totalLabel             = "Total Grievances"
	clearanceLabel         = "Clearance Rate"
	fetchNotice            = "Could not refresh grievances. Showing the last list."
	submitNotice           = "Submission failed. Your draft was kept, try again."
)
