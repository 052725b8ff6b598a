package components

import (
	"github.com/automoto/doomerang-duel/config"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	Combo       string // name of the running combo, empty for single attacks
	ComboIndex  int    // attack of the combo currently in flight
	ComboLength int
	Attacks     int // attacks landed this encounter
}

var Enemy = donburi.NewComponentType[EnemyData]()

// TelegraphData drives the direction indicator and its color fade.
type TelegraphData struct {
	Active    bool
	Direction config.Direction
	Fade      *gween.Tween
	Intensity float32 // 0 when the telegraph starts, 1 when the attack lands
}

var Telegraph = donburi.NewComponentType[TelegraphData]()
