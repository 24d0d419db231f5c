package simulation

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/brickstorm/core"
)

// actor drains a channel inbox on its own goroutine and hands each message to handle in order
type actor struct {
	ch     *Channel
	log    *log.Logger
	handle func(Message)
	done   chan struct{}
}

func newActor(ch *Channel, logger *log.Logger, handle func(Message)) actor {
	return actor{
		ch:     ch,
		log:    logger,
		handle: handle,
		done:   make(chan struct{}),
	}
}

// start launches the loop; it exits when ctx is cancelled
// A panic inside handle is routed to the crash handler
func (a *actor) start(ctx context.Context) {
	core.Go(func() {
		defer close(a.done)
		a.log.Debug("simulation started", "channel", a.ch.Name())
		for {
			select {
			case <-ctx.Done():
				a.log.Debug("simulation stopped", "channel", a.ch.Name())
				return
			case <-a.ch.inbox.Signal():
				for _, m := range a.ch.inbox.Consume() {
					a.handle(m)
				}
			}
		}
	})
}

// Done is closed once the simulation goroutine has exited
func (a *actor) Done() <-chan struct{} {
	return a.done
}
