package relation

import (
	"math"
	"testing"
)

func TestTopK(t *testing.T) {
	scores := []float64{0.5, 0.0, 0.2}

	idx, vals := TopK(scores, 2)
	if len(idx) != 2 {
		t.Fatalf("TopK returned %d entries, want 2", len(idx))
	}
	// The exact-zero score is remapped to +Inf and sorts last, so the two
	// finite scores win.
	if idx[0] != 2 || idx[1] != 0 {
		t.Fatalf("TopK indices = %v, want [2 0]", idx)
	}
	if vals[0] != 0.2 || vals[1] != 0.5 {
		t.Fatalf("TopK values = %v, want [0.2 0.5]", vals)
	}
}

func TestTopKExcludesInfinite(t *testing.T) {
	scores := []float64{0, 0, 0.3}

	idx, vals := TopK(scores, 3)
	if len(idx) != 1 || idx[0] != 2 {
		t.Fatalf("TopK indices = %v, want [2]", idx)
	}
	if vals[0] != 0.3 {
		t.Fatalf("TopK values = %v, want [0.3]", vals)
	}
}

func TestTopKStableTies(t *testing.T) {
	scores := []float64{0.1, 0.1, 0.1}

	idx, _ := TopK(scores, 3)
	for i, want := range []int{0, 1, 2} {
		if idx[i] != want {
			t.Fatalf("TopK tie order = %v, want [0 1 2]", idx)
		}
	}
}

func TestTopKShortInput(t *testing.T) {
	idx, vals := TopK([]float64{0.4}, 100)
	if len(idx) != 1 || len(vals) != 1 {
		t.Fatalf("TopK short input returned %d entries, want 1", len(idx))
	}

	idx, vals = TopK(nil, 100)
	if len(idx) != 0 || len(vals) != 0 {
		t.Fatalf("TopK on empty input returned %d entries, want 0", len(idx))
	}
}

func TestTopKDoesNotMutateInput(t *testing.T) {
	scores := []float64{0.5, 0.0, 0.2}

	TopK(scores, 2)
	if scores[1] != 0 {
		t.Fatalf("TopK mutated caller's scores: %v", scores)
	}
	if math.IsInf(scores[1], 1) {
		t.Fatalf("TopK leaked the +Inf remap into caller's scores")
	}
}
