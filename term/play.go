package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
)

// Open initializes a terminal screen. Callers must Fini it.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.HideCursor()
	return screen, nil
}

// Play runs g at interval with keys from reader, which must already be
// reading events. After a game over the final board stays up until a quit
// key is pressed.
func Play(ctx context.Context, g *loop.Game, r *Renderer, reader *KeyReader, interval time.Duration) error {
	if err := g.Run(ctx, reader, interval); err != nil {
		return err
	}
	if !g.State().Over {
		return nil
	}

	r.Draw(g.Summary())
	// Let any key still held from the last frame expire first.
	time.Sleep(reader.hold)
	return reader.WaitFor(ctx, input.NewKeySet(input.KeyQ, input.KeyEscape))
}
