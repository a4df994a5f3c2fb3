package relevance

import (
	"reflect"
	"testing"
)

func TestMatchesReturnsMatchedSubset(t *testing.T) {
	got := Matches("Canada announces new EV rebates", []string{"EV rebates", "mining"})
	want := []string{"EV rebates"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matches = %v, want %v", got, want)
	}
}

func TestMatchesEmptyForUnrelatedText(t *testing.T) {
	got := Matches("completely unrelated text about cooking", []string{"EV rebates", "mining", "hydrogen"})
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	got := Matches("NEW INVESTMENT IN CLEAN ENERGY PROJECTS", []string{"clean energy"})
	if len(got) != 1 || got[0] != "clean energy" {
		t.Errorf("expected case-insensitive match, got %v", got)
	}
}

func TestMatchesRequiresWholeWords(t *testing.T) {
	// "EV" must not fire inside tokens like "EVERY" or "SEVEN".
	if got := Matches("EVERY seven devices", []string{"EV"}); len(got) != 0 {
		t.Errorf("substring match leaked through word boundary: %v", got)
	}
	if got := Matches("the new EV charging network", []string{"EV"}); len(got) != 1 {
		t.Errorf("whole-word match missed: %v", got)
	}
}

func TestMatchesMultipleTermsKeepConfiguredOrder(t *testing.T) {
	text := "Mining companies eye hydrogen and critical minerals"
	got := Matches(text, []string{"critical minerals", "hydrogen", "mining"})
	want := []string{"critical minerals", "hydrogen", "mining"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matches = %v, want %v", got, want)
	}
}
