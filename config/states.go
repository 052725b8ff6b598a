package config

import (
	"fmt"
	"strings"
)

// Direction is the matching currency between enemy telegraphs and player parries.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every attack direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

var directionNames = map[Direction]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Valid reports whether d is one of the four attack directions.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// ParseDirection accepts the lower or upper case direction name.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalYAML encodes the direction by name so preset files stay readable.
func (d Direction) MarshalYAML() (interface{}, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown direction %d", int(d))
	}
	return d.String(), nil
}

// UnmarshalYAML decodes a direction name.
func (d *Direction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Fighter identifies one side of the duel.
type Fighter int

const (
	PlayerFighter Fighter = iota
	EnemyFighter
)

func (f Fighter) String() string {
	switch f {
	case PlayerFighter:
		return "player"
	case EnemyFighter:
		return "enemy"
	}
	return fmt.Sprintf("fighter(%d)", int(f))
}

// Opponent returns the other side of the duel.
func (f Fighter) Opponent() Fighter {
	if f == PlayerFighter {
		return EnemyFighter
	}
	return PlayerFighter
}

// CombatResult is the terminal classification of one enemy attack.
type CombatResult int

const (
	Parry CombatResult = iota
	Dodge
	Hit
	Miss
)

func (r CombatResult) String() string {
	switch r {
	case Parry:
		return "parry"
	case Dodge:
		return "dodge"
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// StateID names a fighter FSM state. Values double as looplab/fsm state names.
type StateID = string

const (
	Idle         StateID = "idle"
	Defeated     StateID = "defeated"
	Parrying     StateID = "parrying"
	Blocking     StateID = "blocking"
	Dodging      StateID = "dodging"
	Punching     StateID = "punching"
	Telegraphing StateID = "telegraphing"
	Attacking    StateID = "attacking"
	Stunned      StateID = "stunned"
)
