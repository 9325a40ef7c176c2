package weatherui

import "github.com/skyglance/weather/internal/domain"

// Phase is the mutually exclusive display mode
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is a snapshot of what the UI shows. Err is set only in PhaseError,
// Reading and Display only in PhaseLoaded.
type State struct {
	Phase   Phase
	Err     *LookupError
	Reading domain.WeatherReading
	Display Display
}

// Message is the error text shown to the user, or "" outside PhaseError
func (s State) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}

func loadingState() State {
	return State{Phase: PhaseLoading}
}

func errorState(err *LookupError) State {
	return State{Phase: PhaseError, Err: err}
}

func loadedState(r domain.WeatherReading) State {
	return State{Phase: PhaseLoaded, Reading: r, Display: Render(r)}
}
