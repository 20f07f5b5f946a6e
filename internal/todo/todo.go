// Package todo holds the todo list state and the service that owns it.
package todo

import (
	"sort"
	"strings"
)

// MaxTitleLength is the input-layer cap on titles. The data model itself
// does not enforce it.
const MaxTitleLength = 38

// Todo represents one list item.
type Todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Collection is the full set of todos as persisted.
type Collection []Todo

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// SortByIDDesc orders the collection by id, highest first.
func SortByIDDesc(c Collection) {
	sort.SliceStable(c, func(i, j int) bool { return c[i].ID > c[j].ID })
}

// List is the in-memory ordered sequence of todos.
// It is not safe for concurrent use; Service serializes access.
type List struct {
	items Collection
}

// NewList creates a list from an existing collection, keeping its order.
func NewList(c Collection) *List {
	return &List{items: c.Clone()}
}

// Items returns a copy of the current sequence.
func (l *List) Items() Collection {
	if l.items == nil {
		return Collection{}
	}
	return l.items.Clone()
}

// Len returns the number of todos.
func (l *List) Len() int {
	return len(l.items)
}

// Find returns the todo with the given id.
func (l *List) Find(id int) (Todo, bool) {
	for _, t := range l.items {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// NextID returns the id the next Add will assign: the first element's id
// plus one, or 1 for an empty list.
func (l *List) NextID() int {
	if len(l.items) == 0 {
		return 1
	}
	return l.items[0].ID + 1
}

// Add prepends a new todo. Blank titles are ignored.
// The list is not re-sorted afterwards.
func (l *List) Add(title string) (Todo, bool) {
	if strings.TrimSpace(title) == "" {
		return Todo{}, false
	}
	t := Todo{ID: l.NextID(), Title: title}
	items := make(Collection, 0, len(l.items)+1)
	items = append(items, t)
	items = append(items, l.items...)
	l.items = items
	return t, true
}

// Toggle flips the completion flag of the matching todo.
func (l *List) Toggle(id int) bool {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Completed = !l.items[i].Completed
			return true
		}
	}
	return false
}

// Remove drops the matching todo.
func (l *List) Remove(id int) bool {
	kept := make(Collection, 0, len(l.items))
	for _, t := range l.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(l.items) {
		return false
	}
	l.items = kept
	return true
}

// ReplaceByID removes every record with the draft's id and appends the
// draft. A draft whose id is not in the collection is simply appended.
func ReplaceByID(c Collection, draft Todo) Collection {
	out := make(Collection, 0, len(c)+1)
	for _, t := range c {
		if t.ID != draft.ID {
			out = append(out, t)
		}
	}
	return append(out, draft)
}
