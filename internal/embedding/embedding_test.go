package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/sysid/bkmr/internal/domain"
)

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestSerializeRoundTrip(t *testing.T) {
	v := []float32{1, 2.5, -3.25, 0}
	got, err := Deserialize(Serialize(v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range v {
		if got[i] != v[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], v[i])
		}
	}
}

func TestSerializeRawRoundTrip(t *testing.T) {
	v := []float32{1, 2.5, -3.25, 0}
	got, err := DeserializeRaw(SerializeRaw(v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range v {
		if got[i] != v[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], v[i])
		}
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float32{1, 2, 3}
	if sim := CosineSimilarity(v, v); !approxEqual(sim, 1) {
		t.Fatalf("sim(v,v) = %v, want 1", sim)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	v := []float32{1, 2, 3}
	neg := []float32{-1, -2, -3}
	if sim := CosineSimilarity(v, neg); !approxEqual(sim, -1) {
		t.Fatalf("sim(v,-v) = %v, want -1", sim)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	if sim := CosineSimilarity(a, b); !approxEqual(sim, 0) {
		t.Fatalf("sim(a,b) = %v, want 0", sim)
	}
}

func TestCosineSimilarityZeroMagnitude(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}
	if sim := CosineSimilarity(a, b); sim != 0 {
		t.Fatalf("sim with zero vector = %v, want 0", sim)
	}
}

func TestSemanticSearchOrdering(t *testing.T) {
	query := []float32{1, 0, 0}
	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	type scored struct {
		idx int
		sim float64
	}
	var results []scored
	for i, v := range vectors {
		results = append(results, scored{idx: i, sim: CosineSimilarity(query, v)})
	}
	// first (1.0), third (~0.707), second (0.0)
	if !approxEqual(results[0].sim, 1.0) {
		t.Fatalf("first sim = %v, want 1.0", results[0].sim)
	}
	if !approxEqual(results[2].sim, 0.7071067) {
		t.Fatalf("third sim = %v, want ~0.707", results[2].sim)
	}
	if !approxEqual(results[1].sim, 0.0) {
		t.Fatalf("second sim = %v, want 0.0", results[1].sim)
	}
}

func TestFingerprintStableForSameInput(t *testing.T) {
	a, _ := domain.NewTag("a")
	b, _ := domain.NewTag("b")
	bm1 := &domain.Bookmark{Title: "T", Description: "D", Tags: []domain.Tag{b, a}}
	bm2 := &domain.Bookmark{Title: "T", Description: "D", Tags: []domain.Tag{a, b}}
	if Fingerprint(bm1) != Fingerprint(bm2) {
		t.Fatal("fingerprint should be order-independent over the tag set")
	}
}

func TestFingerprintChangesWithTitle(t *testing.T) {
	bm1 := &domain.Bookmark{Title: "T1"}
	bm2 := &domain.Bookmark{Title: "T2"}
	if Fingerprint(bm1) == Fingerprint(bm2) {
		t.Fatal("fingerprint should change when title changes")
	}
}

func TestNullEmbedder(t *testing.T) {
	e := NullEmbedder{}
	v, err := e.Embed(context.Background(), "anything")
	if err != nil || v != nil {
		t.Fatalf("got %v, %v; want nil, nil", v, err)
	}
}
