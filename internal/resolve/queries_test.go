package resolve

import (
	"reflect"
	"testing"
)

func TestQueriesOrderAndDedup(t *testing.T) {
	// Clean and simple forms coincide here, so the list collapses to three.
	got := Queries("Nightfall (Extended Mix)", "Aurora / Someone")
	want := []string{"Nightfall", "Nightfall Aurora", "Aurora"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Queries = %v, want %v", got, want)
	}
}

func TestQueriesPunctuatedTitle(t *testing.T) {
	got := Queries("Don't Stop!", "The Band ft. Guest")
	want := []string{
		"Don't Stop!",
		"Don't Stop! The Band",
		"Dont Stop",
		"Dont Stop The Band",
		"The Band",
		"Dont",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Queries = %v, want %v", got, want)
	}
}

func TestQueriesNoEmptyEntries(t *testing.T) {
	for _, q := range Queries("(untitled)", "") {
		if q == "" {
			t.Fatal("Queries returned an empty string")
		}
	}
}

func TestQueriesShortFirstWordOmitted(t *testing.T) {
	for _, q := range Queries("Run Away", "Solo") {
		if q == "Run" {
			t.Fatalf("single-token query %q should be gated on length > 3", q)
		}
	}
	found := false
	for _, q := range Queries("Thunderstruck Anthem", "Solo") {
		if q == "Thunderstruck" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected long first-word fallback query")
	}
}

func TestQueriesCapped(t *testing.T) {
	got := Queries("A.B.C. Song (Live)", "X / Y ft. Z")
	if len(got) > 7 {
		t.Fatalf("Queries returned %d entries, cap is 7: %v", len(got), got)
	}
	seen := make(map[string]struct{})
	for _, q := range got {
		if _, dup := seen[q]; dup {
			t.Fatalf("duplicate query %q in %v", q, got)
		}
		seen[q] = struct{}{}
	}
}
