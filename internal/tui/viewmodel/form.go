package viewmodel

// Submit control labels.
const (
	SubmitLabel     = "Submit Grievance"
	SubmittingLabel = "Submitting..."
	SuccessText     = "Grievance submitted successfully! AI analysis complete."
)

// SubmitButton is the submit control state.
type SubmitButton struct {
	Label    string
	Disabled bool
}

// BuildSubmitButton derives the submit control from the loading flag.
func BuildSubmitButton(loading bool) SubmitButton {
	if loading {
		return SubmitButton{Label: SubmittingLabel, Disabled: true}
	}
	return SubmitButton{Label: SubmitLabel}
}
