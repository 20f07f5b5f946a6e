package todo

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// listGenerator builds id-descending lists the way the app does: by adding.
func listGenerator() *rapid.Generator[*List] {
	return rapid.Custom(func(t *rapid.T) *List {
		l := NewList(nil)
		n := rapid.IntRange(0, 20).Draw(t, "size")
		for i := 0; i < n; i++ {
			l.Add(titleGenerator().Draw(t, "title"))
			if rapid.Bool().Draw(t, "toggle") {
				l.Toggle(l.items[0].ID)
			}
		}
		// Gaps in the ids, as left by removals.
		if l.Len() > 2 && rapid.Bool().Draw(t, "gap") {
			l.Remove(l.items[1].ID)
		}
		return l
	})
}

func titleGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ]{0,37}`)
}

func blankGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[ \t\n]{0,10}`)
}

func maxID(c Collection) int {
	m := 0
	for _, t := range c {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func testAdd_AssignsNextID_Properties(t *rapid.T) {
	l := listGenerator().Draw(t, "list")
	title := titleGenerator().Draw(t, "new")
	before := l.Items()

	added, ok := l.Add(title)
	if !ok {
		t.Fatal("Add of non-blank title reported no change")
	}

	after := l.Items()
	if len(after) != len(before)+1 {
		t.Fatalf("length %d -> %d, want +1", len(before), len(after))
	}
	if added.ID != maxID(before)+1 {
		t.Fatalf("id = %d, want %d", added.ID, maxID(before)+1)
	}
	if after[0] != added {
		t.Fatalf("new todo should be first, got %+v", after[0])
	}
	if added.Title != title || added.Completed {
		t.Fatalf("added = %+v", added)
	}
	if !reflect.DeepEqual(after[1:], before) {
		t.Fatal("existing todos changed")
	}
}

func TestAdd_AssignsNextID_Properties(t *testing.T) {
	rapid.Check(t, testAdd_AssignsNextID_Properties)
}

func testAdd_BlankIsNoop_Properties(t *rapid.T) {
	l := listGenerator().Draw(t, "list")
	before := l.Items()

	if _, ok := l.Add(blankGenerator().Draw(t, "blank")); ok {
		t.Fatal("Add of blank title reported a change")
	}
	if !reflect.DeepEqual(l.Items(), before) {
		t.Fatal("Add of blank title changed the list")
	}
}

func TestAdd_BlankIsNoop_Properties(t *testing.T) {
	rapid.Check(t, testAdd_BlankIsNoop_Properties)
}

func testToggle_FlipsExactlyOne_Properties(t *rapid.T) {
	l := listGenerator().Draw(t, "list")
	before := l.Items()
	if len(before) == 0 {
		if l.Toggle(rapid.Int().Draw(t, "id")) {
			t.Fatal("Toggle on empty list reported a change")
		}
		return
	}

	idx := rapid.IntRange(0, len(before)-1).Draw(t, "index")
	id := before[idx].ID
	if !l.Toggle(id) {
		t.Fatalf("Toggle(%d) reported no change", id)
	}

	after := l.Items()
	for i := range before {
		want := before[i]
		if i == idx {
			want.Completed = !want.Completed
		}
		if after[i] != want {
			t.Fatalf("todo %d = %+v, want %+v", i, after[i], want)
		}
	}
}

func TestToggle_FlipsExactlyOne_Properties(t *testing.T) {
	rapid.Check(t, testToggle_FlipsExactlyOne_Properties)
}

func testToggle_UnknownIsNoop_Properties(t *rapid.T) {
	l := listGenerator().Draw(t, "list")
	before := l.Items()

	if l.Toggle(maxID(before) + rapid.IntRange(1, 100).Draw(t, "offset")) {
		t.Fatal("Toggle of unknown id reported a change")
	}
	if !reflect.DeepEqual(l.Items(), before) {
		t.Fatal("Toggle of unknown id changed the list")
	}
}

func TestToggle_UnknownIsNoop_Properties(t *testing.T) {
	rapid.Check(t, testToggle_UnknownIsNoop_Properties)
}

func testRemove_Properties(t *rapid.T) {
	l := listGenerator().Draw(t, "list")
	before := l.Items()

	if len(before) > 0 && rapid.Bool().Draw(t, "existing") {
		id := rapid.SampledFrom(before).Draw(t, "todo").ID
		if !l.Remove(id) {
			t.Fatalf("Remove(%d) reported no change", id)
		}
		if l.Len() != len(before)-1 {
			t.Fatalf("length %d -> %d, want -1", len(before), l.Len())
		}
		if _, ok := l.Find(id); ok {
			t.Fatalf("todo %d still present", id)
		}
		return
	}

	if l.Remove(maxID(before) + 1) {
		t.Fatal("Remove of unknown id reported a change")
	}
	if !reflect.DeepEqual(l.Items(), before) {
		t.Fatal("Remove of unknown id changed the list")
	}
}

func TestRemove_Properties(t *testing.T) {
	rapid.Check(t, testRemove_Properties)
}

func TestAddKeepsUntrimmedTitle(t *testing.T) {
	l := NewList(nil)
	added, ok := l.Add("  Buy milk ")
	if !ok {
		t.Fatal("Add reported no change")
	}
	if added.Title != "  Buy milk " {
		t.Errorf("Title = %q, want untrimmed input", added.Title)
	}
	if added.ID != 1 {
		t.Errorf("first id = %d, want 1", added.ID)
	}
}

func TestAddUsesFirstElementID(t *testing.T) {
	// Ids come from the head of the list, not a scan for the maximum.
	l := NewList(Collection{{ID: 3, Title: "c"}, {ID: 9, Title: "i"}})
	added, _ := l.Add("new")
	if added.ID != 4 {
		t.Errorf("id = %d, want 4", added.ID)
	}
}

func TestSeedScenario(t *testing.T) {
	seed, err := Seed()
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	n := len(seed)
	if n == 0 {
		t.Fatal("seed should not be empty")
	}

	l := NewList(seed)
	added, ok := l.Add("Buy milk")
	if !ok {
		t.Fatal("Add reported no change")
	}

	items := l.Items()
	if len(items) != n+1 {
		t.Errorf("len = %d, want %d", len(items), n+1)
	}
	want := Todo{ID: maxID(seed) + 1, Title: "Buy milk", Completed: false}
	if added != want || items[0] != want {
		t.Errorf("added = %+v, first = %+v, want %+v", added, items[0], want)
	}
}

func TestToggleScenario(t *testing.T) {
	l := NewList(Collection{
		{ID: 2, Title: "A", Completed: false},
		{ID: 1, Title: "B", Completed: false},
	})
	l.Toggle(1)

	want := Collection{
		{ID: 2, Title: "A", Completed: false},
		{ID: 1, Title: "B", Completed: true},
	}
	if got := l.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("after Toggle(1) = %+v, want %+v", got, want)
	}
}

func TestSeedIsSortedAndUnique(t *testing.T) {
	seed, err := Seed()
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	seen := map[int]bool{}
	for i, todo := range seed {
		if seen[todo.ID] {
			t.Errorf("duplicate seed id %d", todo.ID)
		}
		seen[todo.ID] = true
		if i > 0 && seed[i-1].ID < todo.ID {
			t.Errorf("seed not id-descending at %d", i)
		}
		if n := len([]rune(todo.Title)); n > MaxTitleLength {
			t.Errorf("seed title %q is %d characters", todo.Title, n)
		}
		if strings.TrimSpace(todo.Title) == "" {
			t.Errorf("seed todo %d has a blank title", todo.ID)
		}
	}
}

func TestReplaceByID(t *testing.T) {
	tests := []struct {
		name  string
		in    Collection
		draft Todo
		want  Collection
	}{
		{
			name:  "replaces and appends",
			in:    Collection{{ID: 3, Title: "c"}, {ID: 2, Title: "b"}, {ID: 1, Title: "a"}},
			draft: Todo{ID: 2, Title: "B", Completed: true},
			want:  Collection{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}, {ID: 2, Title: "B", Completed: true}},
		},
		{
			name:  "absent id is inserted",
			in:    Collection{{ID: 2, Title: "b"}},
			draft: Todo{ID: 5, Title: "X"},
			want:  Collection{{ID: 2, Title: "b"}, {ID: 5, Title: "X"}},
		},
		{
			name:  "empty collection",
			in:    nil,
			draft: Todo{ID: 1, Title: "x"},
			want:  Collection{{ID: 1, Title: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in.Clone()
			got := ReplaceByID(tt.in, tt.draft)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReplaceByID = %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(tt.in, in) {
				t.Error("ReplaceByID modified its input")
			}
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	l := NewList(Collection{{ID: 1, Title: "a"}})
	items := l.Items()
	items[0].Title = "changed"
	if got, _ := l.Find(1); got.Title != "a" {
		t.Error("mutating Items() result changed the list")
	}
	if empty := NewList(nil).Items(); empty == nil || len(empty) != 0 {
		t.Errorf("Items() on empty list = %#v, want empty non-nil", empty)
	}
}
