package match

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kevinzhu12/monopoly-bench/internal/agent"
)

var (
	ErrStarted       = errors.New("match already started")
	ErrRosterFull    = errors.New("roster is full")
	ErrDuplicateSeat = errors.New("player already seated")
	ErrTooFewPlayers = errors.New("not enough players")
)

// Seat binds a player ID to the agent that plays it.
type Seat struct {
	ID    string
	Agent agent.Agent
}

// Roster collects seats before a match starts.
type Roster struct {
	mu         sync.Mutex
	Seats      []Seat
	MaxPlayers int
	MinPlayers int
	Started    bool
}

func NewRoster() *Roster {
	return &Roster{
		MaxPlayers: 8,
		MinPlayers: 2,
	}
}

// Join seats a player.
func (r *Roster) Join(id string, a agent.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Started {
		return ErrStarted
	}
	if len(r.Seats) >= r.MaxPlayers {
		return ErrRosterFull
	}
	if id == "" || a == nil {
		return fmt.Errorf("seat needs a player id and an agent")
	}
	for _, s := range r.Seats {
		if s.ID == id {
			return fmt.Errorf("%w: %s", ErrDuplicateSeat, id)
		}
	}
	r.Seats = append(r.Seats, Seat{ID: id, Agent: a})
	return nil
}

// Leave removes a player before the match starts.
func (r *Roster) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Started {
		return
	}
	for i, s := range r.Seats {
		if s.ID == id {
			r.Seats = append(r.Seats[:i], r.Seats[i+1:]...)
			return
		}
	}
}

// CanStart returns true if enough players are seated.
func (r *Roster) CanStart() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.Started && len(r.Seats) >= r.MinPlayers
}

// Start locks the roster.
func (r *Roster) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Started {
		return ErrStarted
	}
	if len(r.Seats) < r.MinPlayers {
		return fmt.Errorf("%w: %d seated, need %d", ErrTooFewPlayers, len(r.Seats), r.MinPlayers)
	}
	r.Started = true
	return nil
}

// IDs returns the seated player IDs in join order, which is turn order.
func (r *Roster) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Seats))
	for i, s := range r.Seats {
		out[i] = s.ID
	}
	return out
}

// Agents returns the agent for each seated player.
func (r *Roster) Agents() map[string]agent.Agent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]agent.Agent, len(r.Seats))
	for _, s := range r.Seats {
		out[s.ID] = s.Agent
	}
	return out
}

// FromSpecs seats one agent per spec, as p1, p2, ... Seat i gets seed+i.
func FromSpecs(reg *agent.Registry, specs []string, seed int64) (*Roster, error) {
	r := NewRoster()
	for i, spec := range specs {
		id := fmt.Sprintf("p%d", i+1)
		a, err := reg.New(spec, id, seed+int64(i))
		if err != nil {
			return nil, err
		}
		if err := r.Join(id, a); err != nil {
			return nil, err
		}
	}
	return r, nil
}
