package organizer

// Action is the outcome of classification.
type Action int

const (
	ActionKeep Action = iota
	ActionSkip
)

func (a Action) String() string {
	if a == ActionSkip {
		return "skip"
	}
	return "keep"
}

// Reason explains a Skip decision. It exists for logging and reports only.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDSLRCamera
	ReasonLightroomSoftware
	ReasonGoogleMix
	ReasonEditedOriginalExists
)

func (r Reason) String() string {
	switch r {
	case ReasonDSLRCamera:
		return "DslrCamera"
	case ReasonLightroomSoftware:
		return "LightroomSoftware"
	case ReasonGoogleMix:
		return "GoogleMixFile"
	case ReasonEditedOriginalExists:
		return "EditedOriginalExists"
	default:
		return ""
	}
}

// Reasons lists every skip reason in rule order.
func Reasons() []Reason {
	return []Reason{ReasonDSLRCamera, ReasonLightroomSoftware, ReasonGoogleMix, ReasonEditedOriginalExists}
}

// Decision is Keep or Skip with the reason for skipping.
type Decision struct {
	Action Action
	Reason Reason
}

// Keep returns a keep decision.
func Keep() Decision {
	return Decision{Action: ActionKeep}
}

// Skip returns a skip decision with the given reason.
func Skip(reason Reason) Decision {
	return Decision{Action: ActionSkip, Reason: reason}
}

// Kept reports whether the file should be placed in the output tree.
func (d Decision) Kept() bool {
	return d.Action == ActionKeep
}

func (d Decision) String() string {
	if d.Kept() {
		return d.Action.String()
	}
	return d.Action.String() + "(" + d.Reason.String() + ")"
}
