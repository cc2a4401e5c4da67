package core

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// GameLoop ticks a server at a fixed rate.
type GameLoop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks the server until ctx is cancelled or Stop is called.
func (g *GameLoop) Run(ctx context.Context) {
	defer close(g.done)

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	logs.WithTag("tick_rate", g.tickRate).Info("game loop started")

	for {
		select {
		case <-ctx.Done():
			logs.WithTag("ticks", g.server.Ticks()).Info("game loop stopped")
			return
		case <-g.stopChan:
			logs.WithTag("ticks", g.server.Ticks()).Info("game loop stopped")
			return
		case <-ticker.C:
			g.server.Tick()
		}
	}
}

// Stop ends Run. It must be called at most once.
func (g *GameLoop) Stop() {
	close(g.stopChan)
}

// Done is closed once Run returns.
func (g *GameLoop) Done() <-chan struct{} {
	return g.done
}
