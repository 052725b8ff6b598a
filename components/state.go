package components

import (
	"time"

	"github.com/automoto/doomerang-duel/config"
	"github.com/looplab/fsm"
	"github.com/yohamta/donburi"
)

type StateData struct {
	Machine   *fsm.FSM
	EnteredAt time.Duration // simulation time of the last transition
	Previous  config.StateID
}

// Current is the machine's state, or Idle before a machine is attached.
func (s *StateData) Current() config.StateID {
	if s.Machine == nil {
		return config.Idle
	}
	return s.Machine.Current()
}

var State = donburi.NewComponentType[StateData]()
