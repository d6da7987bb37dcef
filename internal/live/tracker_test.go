package live

import (
	"testing"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
)

func uuids(list []games.Game) []string {
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.UUID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddReturnsOnlyNewGamesInOrder(t *testing.T) {
	tr := NewTracker()

	added := tr.Add([]games.Game{{UUID: "a"}, {UUID: "b"}})
	if !equal(uuids(added), []string{"a", "b"}) {
		t.Fatalf("unexpected first delta %v", uuids(added))
	}

	added = tr.Add([]games.Game{{UUID: "b"}, {UUID: "c"}, {UUID: "c"}, {UUID: ""}})
	if !equal(uuids(added), []string{"c"}) {
		t.Fatalf("expected only c to be added, got %v", uuids(added))
	}
	if !equal(uuids(tr.Current()), []string{"a", "b", "c"}) {
		t.Fatalf("unexpected live set %v", uuids(tr.Current()))
	}
	if tr.Len() != 3 {
		t.Fatalf("expected 3 tracked games, got %d", tr.Len())
	}
}

func TestAddKeepsFirstSeenCopy(t *testing.T) {
	tr := NewTracker()
	tr.Add([]games.Game{{UUID: "a", HomeScore: 1}})
	tr.Add([]games.Game{{UUID: "a", HomeScore: 5}})

	if got := tr.Current()[0].HomeScore; got != 1 {
		t.Fatalf("expected original entry to be kept, got score %d", got)
	}
}

func TestRemoveKeepsOrderAndIsNoOpWhenAbsent(t *testing.T) {
	tr := NewTracker()
	tr.Add([]games.Game{{UUID: "a"}, {UUID: "b"}, {UUID: "c"}})

	if !tr.Remove("b") {
		t.Fatalf("expected b to be removed")
	}
	if tr.Remove("b") {
		t.Fatalf("expected second removal to be a no-op")
	}
	if tr.Remove("missing") {
		t.Fatalf("expected unknown uuid removal to be a no-op")
	}
	if !equal(uuids(tr.Current()), []string{"a", "c"}) {
		t.Fatalf("unexpected live set %v", uuids(tr.Current()))
	}
	if !tr.Contains("c") || tr.Contains("b") {
		t.Fatalf("unexpected membership after removal")
	}

	tr.Remove("a")
	if !tr.Remove("c") || tr.Len() != 0 {
		t.Fatalf("expected tracker to be empty")
	}

	tr.Add([]games.Game{{UUID: "b"}})
	if !equal(uuids(tr.Current()), []string{"b"}) {
		t.Fatalf("expected removed game to be addable again")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Add([]games.Game{{UUID: "a"}})

	list := tr.Current()
	list[0].UUID = "mutated"

	if tr.Current()[0].UUID != "a" {
		t.Fatalf("expected tracker to remain unchanged")
	}
}
