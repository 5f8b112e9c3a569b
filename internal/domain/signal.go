package domain

// Signal is the policy recommendation derived from a rate forecast.
type Signal string

const (
	SignalRaise Signal = "Raise"
	SignalLower Signal = "Lower"
	SignalHold  Signal = "Hold"
)

func (s Signal) IsValid() bool {
	switch s {
	case SignalRaise, SignalLower, SignalHold:
		return true
	default:
		return false
	}
}
