package trace

import "github.com/ride-sim/ride-sim/sim/geo"

// Monitor collects activities per actor, in notification order.
// Actors are remembered in first-seen order so reports are deterministic.
type Monitor struct {
	activities map[ActorKind]map[string][]Activity
	order      map[ActorKind][]string
	all        []Activity
}

// NewMonitor creates a Monitor ready for recording.
func NewMonitor() *Monitor {
	return &Monitor{
		activities: map[ActorKind]map[string][]Activity{
			ActorRider:  make(map[string][]Activity),
			ActorDriver: make(map[string][]Activity),
		},
		order: make(map[ActorKind][]string),
	}
}

// Notify appends an activity for the given actor.
func (m *Monitor) Notify(timestamp int64, actor ActorKind, kind ActivityKind, id string, loc geo.Location) {
	byID, ok := m.activities[actor]
	if !ok {
		byID = make(map[string][]Activity)
		m.activities[actor] = byID
	}
	if _, seen := byID[id]; !seen {
		m.order[actor] = append(m.order[actor], id)
	}
	a := Activity{Time: timestamp, Actor: actor, Kind: kind, ID: id, Location: loc}
	byID[id] = append(byID[id], a)
	m.all = append(m.all, a)
}

// Activities returns the recorded activities of one actor, oldest first.
func (m *Monitor) Activities(actor ActorKind, id string) []Activity {
	return m.activities[actor][id]
}

// Actors returns the IDs of all actors of the given kind in first-seen order.
func (m *Monitor) Actors(actor ActorKind) []string {
	return m.order[actor]
}

// All returns every recorded activity in notification order.
func (m *Monitor) All() []Activity {
	return m.all
}
