package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shipbot/pkg/zodiac"

	"github.com/bwmarrin/discordgo"
)

// DefaultTimeout bounds each answer
const DefaultTimeout = 30 * time.Second

// ErrBusy means the invoking user already has a dialogue in flight
var ErrBusy = errors.New("dialogue already in progress")

// TimeoutError is returned when nobody answered for Subject in time
type TimeoutError struct {
	Subject string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no birthdate for %s before the deadline", e.Subject)
}

// FormatError is returned when the answer for Subject was not DD/MM/YYYY
type FormatError struct {
	Subject string
	Input   string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("birthdate for %s: %v", e.Subject, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

type Slot int

const (
	FirstSlot Slot = iota
	SecondSlot
)

type Phase int

const (
	AwaitingBirthdate Phase = iota
	Completed
	TimedOut
	Rejected
)

func (p Phase) String() string {
	switch p {
	case AwaitingBirthdate:
		return "awaiting_birthdate"
	case Completed:
		return "completed"
	case TimedOut:
		return "timed_out"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// State is where a single kundli dialogue currently stands
type State struct {
	Phase      Phase
	Awaiting   Slot
	Deadline   time.Time
	Birthdates [2]zodiac.Birthdate
}

// Request describes one dialogue. Prompt is called once per slot, after the
// wait for that slot is in place.
type Request struct {
	ChannelID   string
	RequesterID string
	Subjects    [2]string
	Prompt      func(subject string) error
}

// waiter is a pending read for one user in one channel
type waiter struct {
	channelID string
	ch        chan *discordgo.Message
}

// Collector hands the next message of a user in a channel to whoever is
// waiting for it. Messages nobody waits for are left alone.
type Collector struct {
	Timeout time.Duration

	mu      sync.Mutex
	active  map[string]bool
	waiters map[string]*waiter
}

func NewCollector(timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{
		Timeout: timeout,
		active:  make(map[string]bool),
		waiters: make(map[string]*waiter),
	}
}

// Offer delivers m to a matching wait. It returns true when m was consumed.
func (c *Collector) Offer(m *discordgo.Message) bool {
	if m == nil || m.Author == nil {
		return false
	}

	c.mu.Lock()
	w, ok := c.waiters[m.Author.ID]
	if !ok || w.channelID != m.ChannelID {
		c.mu.Unlock()
		return false
	}
	delete(c.waiters, m.Author.ID)
	c.mu.Unlock()

	w.ch <- m
	return true
}

// Pending reports whether userID currently has a dialogue in flight
func (c *Collector) Pending(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[userID]
}

// Run asks for both birthdates in order. Each slot gets one message; a
// timeout or a malformed answer ends the dialogue.
func (c *Collector) Run(ctx context.Context, req Request) (State, error) {
	state := State{Phase: AwaitingBirthdate, Awaiting: FirstSlot}

	c.mu.Lock()
	if c.active[req.RequesterID] {
		c.mu.Unlock()
		return state, ErrBusy
	}
	c.active[req.RequesterID] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.active, req.RequesterID)
		delete(c.waiters, req.RequesterID)
		c.mu.Unlock()
	}()

	for _, slot := range []Slot{FirstSlot, SecondSlot} {
		subject := req.Subjects[slot]
		state.Awaiting = slot
		state.Deadline = time.Now().Add(c.Timeout)

		m, err := c.await(ctx, req, subject, state.Deadline)
		if err != nil {
			var timeout *TimeoutError
			if errors.As(err, &timeout) {
				state.Phase = TimedOut
			}
			return state, err
		}

		b, err := zodiac.ParseBirthdate(m.Content)
		if err != nil {
			state.Phase = Rejected
			return state, &FormatError{Subject: subject, Input: m.Content, Err: err}
		}
		state.Birthdates[slot] = b
	}

	state.Phase = Completed
	return state, nil
}

func (c *Collector) await(ctx context.Context, req Request, subject string, deadline time.Time) (*discordgo.Message, error) {
	w := &waiter{
		channelID: req.ChannelID,
		ch:        make(chan *discordgo.Message, 1),
	}

	c.mu.Lock()
	c.waiters[req.RequesterID] = w
	c.mu.Unlock()

	if req.Prompt != nil {
		if err := req.Prompt(subject); err != nil {
			return nil, fmt.Errorf("prompt for %s: %w", subject, err)
		}
	}

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case m := <-w.ch:
		return m, nil
	case <-timer.C:
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	if c.waiters[req.RequesterID] == w {
		delete(c.waiters, req.RequesterID)
	}
	c.mu.Unlock()

	// Offer may have won the race against the deadline
	select {
	case m := <-w.ch:
		return m, nil
	default:
	}

	return nil, &TimeoutError{Subject: subject}
}
