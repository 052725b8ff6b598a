package config

// ActionID represents an inbound combat command from the input layer.
// Each is fire-once; parry actions also report their release.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionParryUp
	ActionParryDown
	ActionParryLeft
	ActionParryRight
	ActionPunch
	ActionDodge
	ActionActivateCrit
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:         "none",
	ActionParryUp:      "parry_up",
	ActionParryDown:    "parry_down",
	ActionParryLeft:    "parry_left",
	ActionParryRight:   "parry_right",
	ActionPunch:        "punch",
	ActionDodge:        "dodge",
	ActionActivateCrit: "activate_crit",
}

func (a ActionID) String() string {
	if a >= 0 && a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParryDirection maps a parry action to its direction.
func (a ActionID) ParryDirection() (Direction, bool) {
	switch a {
	case ActionParryUp:
		return Up, true
	case ActionParryDown:
		return Down, true
	case ActionParryLeft:
		return Left, true
	case ActionParryRight:
		return Right, true
	}
	return 0, false
}

// ParryAction is the inverse of ParryDirection.
func ParryAction(d Direction) ActionID {
	switch d {
	case Up:
		return ActionParryUp
	case Down:
		return ActionParryDown
	case Left:
		return ActionParryLeft
	case Right:
		return ActionParryRight
	}
	return ActionNone
}
