package components

import (
	"github.com/automoto/doomerang-duel/meter"
	"github.com/yohamta/donburi"
)

// Energy is both fighters' health and stamina pool.
var Energy = donburi.NewComponentType[meter.Meter]()

// Posture is the enemy's break meter. Present only when posture is enabled.
var Posture = donburi.NewComponentType[meter.Meter]()

// Crit is the player's critical meter. Present only when crit is enabled.
var Crit = donburi.NewComponentType[meter.Meter]()
