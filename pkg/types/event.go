package types

// EventKind identifies what changed in the model.
type EventKind int

const (
	// TaskInserted: Task was inserted into List at Index.
	TaskInserted EventKind = iota + 1
	// TaskRemoved: Task was removed from List at Index.
	TaskRemoved
	// TaskUpdated: Task at Index in List changed title or due date.
	TaskUpdated
	// ListAdded: the list titled List was added to a board at Index.
	ListAdded
	// TaskMoved: Task went from From to List at Index. Boards report a
	// move as this single event once both halves are applied; the lists
	// involved still see their own remove and insert.
	TaskMoved
)

var eventKindNames = map[EventKind]string{
	TaskInserted: "task_inserted",
	TaskRemoved:  "task_removed",
	TaskUpdated:  "task_updated",
	ListAdded:    "list_added",
	TaskMoved:    "task_moved",
}

// String returns the snake_case name of the kind.
func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is a change notification. Observers receive it synchronously, after
// the mutation has been applied.
type Event struct {
	Kind  EventKind
	List  string
	Index int
	Task  *Task     // nil for ListAdded.
	From  *Position // set for TaskMoved.
}

// Observer receives change notifications.
type Observer func(Event)

// observers is a per-instance subscription registry. Each TaskList and Board
// owns its own; nothing is shared between instances.
type observers struct {
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn Observer
}

// add registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (o *observers) add(fn Observer) func() {
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

// emit calls every observer in subscription order. The registry is copied
// first so an observer may unsubscribe itself.
func (o *observers) emit(ev Event) {
	if len(o.subs) == 0 {
		return
	}
	subs := make([]subscription, len(o.subs))
	copy(subs, o.subs)
	for _, s := range subs {
		s.fn(ev)
	}
}

func (o *observers) len() int {
	return len(o.subs)
}
