package components

import (
	"time"

	"github.com/automoto/doomerang-duel/config"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	ParryDirection config.Direction // direction recorded when the parry started
	ParryHeld      bool             // parry button still down
	CooldownUntil  time.Duration    // punches are refused before this instant
	CritArmed      bool             // manual crit consumed, waiting for a stun punch
}

var Player = donburi.NewComponentType[PlayerData]()
