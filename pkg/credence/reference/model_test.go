package reference

import (
	"math"
	"testing"
)

func TestNewModelFrequencies(t *testing.T) {
	m := NewModel(map[string]int64{
		"economy": 30,
		"policy":  70,
	})

	if m.Total() != 100 {
		t.Fatalf("Total = %d, want 100", m.Total())
	}
	if f := m.Frequency("economy"); math.Abs(f-0.3) > 1e-12 {
		t.Errorf("Frequency(economy) = %f, want 0.3", f)
	}
	if m.Source() != SourceCorpus {
		t.Errorf("Source = %q, want corpus", m.Source())
	}
	if m.Degraded() {
		t.Error("corpus model should not be degraded")
	}
}

func TestNewModelDropsNonQualifyingTerms(t *testing.T) {
	m := NewModel(map[string]int64{
		"the":     1000, // too short
		"gpt4":    50,   // not alphabetic
		"economy": 100,
	})

	if m.Total() != 100 {
		t.Errorf("Total = %d, want 100 (only qualifying terms)", m.Total())
	}
	if f := m.Frequency("economy"); f != 1.0 {
		t.Errorf("Frequency(economy) = %f, want 1.0", f)
	}
}

func TestFrequencyDefaultForUnseen(t *testing.T) {
	m := NewModel(map[string]int64{"economy": 100})

	if f := m.Frequency("zeitgeist"); f != DefaultFrequency {
		t.Errorf("unseen term frequency = %g, want %g", f, DefaultFrequency)
	}
}

func TestUniformModel(t *testing.T) {
	m := Uniform()

	if !m.Degraded() {
		t.Error("uniform model should report degraded")
	}
	if f := m.Frequency("anything"); f != DefaultFrequency {
		t.Errorf("uniform frequency = %g, want %g", f, DefaultFrequency)
	}
	if m.Total() != 0 {
		t.Errorf("uniform Total = %d, want 0", m.Total())
	}
}

func TestSubsetPercentages(t *testing.T) {
	m := NewModel(map[string]int64{
		"economy": 75,
		"policy":  25,
	})

	got := m.SubsetPercentages([]string{"economy", "policy"})
	if math.Abs(got[0]-75) > 1e-9 || math.Abs(got[1]-25) > 1e-9 {
		t.Errorf("SubsetPercentages = %v, want [75 25]", got)
	}

	var sum float64
	for _, p := range got {
		sum += p
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want 100", sum)
	}
}

func TestSubsetPercentagesUniformMode(t *testing.T) {
	got := Uniform().SubsetPercentages([]string{"one", "two", "four", "five"})

	for i, p := range got {
		if math.Abs(p-25) > 1e-9 {
			t.Errorf("uniform percentage[%d] = %f, want 25", i, p)
		}
	}
}

func TestSubsetPercentagesEmpty(t *testing.T) {
	if got := Uniform().SubsetPercentages(nil); len(got) != 0 {
		t.Errorf("SubsetPercentages(nil) = %v, want empty", got)
	}
}
