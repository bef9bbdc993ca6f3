package models

// Fetch lifecycle phases of the view-state controller.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseReady   Phase = "READY"
	PhaseError   Phase = "ERROR"
)

// ViewMode selects between the multi-day summary table and the
// hourly detail of a single day.
type ViewMode string

const (
	ModeSummary ViewMode = "SUMMARY"
	ModeDetail  ViewMode = "DETAIL"
)

// ViewState is the externally visible controller state.
// SelectedDay is nil unless a day is selected; it always indexes the
// current snapshot's Days when present.
type ViewState struct {
	Phase       Phase    `json:"phase"`
	Mode        ViewMode `json:"mode"`
	SelectedDay *int     `json:"selected_day,omitempty"`
	Searching   bool     `json:"searching"`
	Error       string   `json:"error,omitempty"`
}
