package receipt

import (
	"regexp"
	"testing"
	"time"
)

var receiptShape = regexp.MustCompile(`^RCP\d{13}\d{3}$`)

// stubbed issues receipts from a frozen clock and a scripted random source.
func stubbed(at time.Time, rolls []int) *Generator {
	return &Generator{
		used: make(map[int]bool),
		now:  func() time.Time { return at },
		rand: func(n int) int {
			r := rolls[0]
			if len(rolls) > 1 {
				rolls = rolls[1:]
			}
			return r
		},
	}
}

func TestNext_Shape(t *testing.T) {
	g := NewGenerator()

	no := g.Next()
	if !receiptShape.MatchString(no) {
		t.Errorf("receipt %q does not match RCP<millis><3-digit suffix>", no)
	}
}

func TestNext_RerollsOnSameMillisecondCollision(t *testing.T) {
	// GIVEN a clock frozen on one millisecond and a random source that
	// repeats once before moving on
	g := stubbed(time.UnixMilli(1717399203451), []int{42, 42, 43})

	// WHEN two receipts are issued in that millisecond
	first := g.Next()
	second := g.Next()

	// THEN the repeated roll is discarded and the numbers differ
	if want := "RCP1717399203451042"; first != want {
		t.Errorf("expected first receipt %q, got %q", want, first)
	}
	if want := "RCP1717399203451043"; second != want {
		t.Errorf("expected second receipt %q, got %q", want, second)
	}
}

func TestNext_RerollsOnNonAdjacentCollision(t *testing.T) {
	// GIVEN a frozen clock and rolls that repeat a suffix issued two
	// receipts earlier
	g := stubbed(time.UnixMilli(1717399203451), []int{42, 43, 42, 44})

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		no := g.Next()
		if seen[no] {
			t.Fatalf("duplicate receipt issued in same millisecond: %q", no)
		}
		seen[no] = true
	}
	if want := "RCP1717399203451044"; !seen[want] {
		t.Errorf("expected the repeated roll to be re-rolled into %q", want)
	}
}

func TestNext_SuffixSetResetsWhenClockAdvances(t *testing.T) {
	// GIVEN a clock that ticks one millisecond between receipts and a
	// random source stuck on one suffix
	at := time.UnixMilli(1717399203451)
	g := &Generator{
		used: make(map[int]bool),
		now: func() time.Time {
			at = at.Add(time.Millisecond)
			return at
		},
		rand: func(n int) int { return 42 },
	}

	first := g.Next()
	second := g.Next()

	// THEN the same suffix is acceptable again in the new millisecond
	if want := "RCP1717399203452042"; first != want {
		t.Errorf("expected first receipt %q, got %q", want, first)
	}
	if want := "RCP1717399203453042"; second != want {
		t.Errorf("expected second receipt %q, got %q", want, second)
	}
}

func TestNext_ConsecutiveReceiptsDiffer(t *testing.T) {
	g := NewGenerator()

	prev := g.Next()
	for i := 0; i < 200; i++ {
		no := g.Next()
		if no == prev {
			t.Fatalf("receipt %q issued twice in a row", no)
		}
		prev = no
	}
}
