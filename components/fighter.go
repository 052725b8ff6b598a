package components

import (
	"github.com/automoto/doomerang-duel/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type FighterData struct {
	Kind   config.Fighter
	Anchor math.Vec2 // where notifications about this fighter appear
}

var Fighter = donburi.NewComponentType[FighterData]()
