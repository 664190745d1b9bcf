package tasks

import "time"

type ActionKind string

const (
	KindAdd    ActionKind = "add"
	KindRemove ActionKind = "remove"
	KindToggle ActionKind = "toggle"
	KindWrite  ActionKind = "write"
	KindSearch ActionKind = "search"
)

type Action interface {
	Kind() ActionKind
}

// Add appends the current draft as a new task. At is the creation time;
// Store.Dispatch fills it from its clock when left zero.
type Add struct {
	At time.Time
}

type Remove struct {
	ID string
}

type Toggle struct {
	ID string
}

// Write updates the draft name and checks it against existing names.
type Write struct {
	Name string
}

type Search struct {
	Text string
}

func (Add) Kind() ActionKind    { return KindAdd }
func (Remove) Kind() ActionKind { return KindRemove }
func (Toggle) Kind() ActionKind { return KindToggle }
func (Write) Kind() ActionKind  { return KindWrite }
func (Search) Kind() ActionKind { return KindSearch }
