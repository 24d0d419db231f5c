package simulation

import (
	"github.com/lixenwraith/brickstorm/event"
)

// Channel is the asynchronous, order-preserving link between the coordinator and one simulation
// Both directions are unbounded: Send and Post never block
type Channel struct {
	name   string
	inbox  *event.Queue[Message] // Coordinator -> simulation
	outbox *event.Queue[Message] // Simulation -> coordinator
}

func NewChannel(name string) *Channel {
	return &Channel{
		name:   name,
		inbox:  event.NewQueue[Message](),
		outbox: event.NewQueue[Message](),
	}
}

func (c *Channel) Name() string { return c.name }

// Send enqueues a request for the simulation
func (c *Channel) Send(m Message) {
	c.inbox.Push(m)
}

// Receive drains responses posted by the simulation, nil when none
func (c *Channel) Receive() []Message {
	return c.outbox.Consume()
}

// Requests drains queued requests; for simulations driven inline through Handle instead of Start
func (c *Channel) Requests() []Message {
	return c.inbox.Consume()
}

// Post enqueues a response for the coordinator
func (c *Channel) Post(m Message) {
	c.outbox.Push(m)
}

// Responses signals when Post has been called; used by tests and blocking tools
func (c *Channel) Responses() <-chan struct{} {
	return c.outbox.Signal()
}

// Pending returns queued request and response counts
func (c *Channel) Pending() (requests, responses int) {
	return c.inbox.Len(), c.outbox.Len()
}
