package questionbank_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

func makePool(n int) []questionbank.Record {
	pool := make([]questionbank.Record, n)
	for i := range pool {
		pool[i] = questionbank.Record{Type: "open", Question: string(rune('A' + i)), Correct: "x"}
	}
	return pool
}

func TestSample_Sizes(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		n        int
		want     int
	}{
		{"fewer than pool", 10, 3, 3},
		{"exactly pool", 4, 4, 4},
		{"more than pool", 2, 5, 2},
		{"empty pool", 0, 5, 0},
		{"zero requested", 5, 0, 0},
		{"negative requested", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := questionbank.Sample(makePool(tt.poolSize), tt.n, nil)
			if got == nil {
				t.Fatal("Sample() returned nil, want non-nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSample_NoDuplicatesAndPoolUntouched(t *testing.T) {
	pool := makePool(8)
	original := slices.Clone(pool)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 50 {
		got := questionbank.Sample(pool, 5, rng)
		seen := make(map[string]bool)
		for _, r := range got {
			if seen[r.Question] {
				t.Fatalf("duplicate record %q in %v", r.Question, got)
			}
			seen[r.Question] = true
			if !slices.ContainsFunc(pool, func(p questionbank.Record) bool { return p.Question == r.Question }) {
				t.Fatalf("record %q not from pool", r.Question)
			}
		}
	}

	for i := range pool {
		if pool[i].Question != original[i].Question {
			t.Fatalf("pool mutated at %d: %q != %q", i, pool[i].Question, original[i].Question)
		}
	}
}

func TestSample_Deterministic(t *testing.T) {
	pool := makePool(6)

	a := questionbank.Sample(pool, 4, rand.New(rand.NewPCG(42, 7)))
	b := questionbank.Sample(pool, 4, rand.New(rand.NewPCG(42, 7)))

	for i := range a {
		if a[i].Question != b[i].Question {
			t.Fatalf("same seed gave different samples: %v vs %v", a, b)
		}
	}
}

func TestSample_Uniform(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping distribution check in short mode")
	}

	// Each of 4 records should lead a 1-record sample roughly a quarter of
	// the time.
	pool := makePool(4)
	rng := rand.New(rand.NewPCG(3, 9))
	counts := make(map[string]int)
	const trials = 40000
	for range trials {
		counts[questionbank.Sample(pool, 1, rng)[0].Question]++
	}

	for q, c := range counts {
		if c < trials/4-1000 || c > trials/4+1000 {
			t.Errorf("record %q picked %d times, want about %d", q, c, trials/4)
		}
	}
	if len(counts) != 4 {
		t.Errorf("only %d distinct records picked, want 4", len(counts))
	}
}
