package stalk

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oomph-ac/stalk/growth"
)

// PlayerHandler forwards the blocks a dragonfly player places and breaks to a Plugin. Attach it
// with (*player.Player).Handle.
type PlayerHandler struct {
	player.NopHandler
	p *Plugin
}

// PlayerHandler returns a handler that reports block changes made by a player to the plugin.
func (p *Plugin) PlayerHandler() PlayerHandler {
	return PlayerHandler{p: p}
}

// HandleBlockPlace ...
func (h PlayerHandler) HandleBlockPlace(ctx *player.Context, pos cube.Pos, b world.Block) {
	if ctx.Cancelled() {
		return
	}
	h.p.Submit(growth.Appeared{Pos: pos, Block: b})
}

// HandleBlockBreak ...
func (h PlayerHandler) HandleBlockBreak(ctx *player.Context, pos cube.Pos, _ *[]item.Stack, _ *int) {
	if ctx.Cancelled() {
		return
	}
	h.p.Submit(growth.Removed{Pos: pos})
}
