package styles

const (
	// General icons
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	HintIcon    string = "💡"

	// Save state icons
	SavedIcon   string = "✓"
	UnsavedIcon string = "●"
	SavingIcon  string = "⟳"

	// Navigation icons
	CrumbSeparator string = "›"
	BackIcon       string = "‹"

	// Case status icons
	OpenCaseIcon     string = "◉"
	PendingCaseIcon  string = "◎"
	ClosedCaseIcon   string = "○"
	ArchivedCaseIcon string = "▢"
)
