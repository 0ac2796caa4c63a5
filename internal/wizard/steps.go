package wizard

// Step keys for the officer search wizard.
const (
	StepDepartment PanelKey = "step-1"
	StepOfficer    PanelKey = "step-2"
	StepSearch     PanelKey = "step-3"
)

// DefaultPanels returns the officer search steps. Only the first step starts
// unlocked; later steps open through the next button.
func DefaultPanels() []Panel {
	return []Panel{
		{Key: StepDepartment, Title: "Department"},
		{Key: StepOfficer, Title: "Rank & Unit", Disabled: true},
		{Key: StepSearch, Title: "Search", Disabled: true},
	}
}
