package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"snap-solver/api/internal/scan"
)

func TestRenderDetailTruncatesOnRuneBoundary(t *testing.T) {
	rec := scan.Record{
		Status:       scan.StatusSolved,
		SolutionText: strings.Repeat("π", detailMaxRunes+100),
	}
	got := renderDetail(rec)
	if !utf8.ValidString(got) {
		t.Fatal("truncated solution is not valid UTF-8")
	}
	want := strings.Repeat("π", detailMaxRunes) + "…"
	if got != want {
		t.Fatalf("got %d runes, want %d + ellipsis", utf8.RuneCountInString(got), detailMaxRunes)
	}
}

func TestRenderDetailShortSolutionUntouched(t *testing.T) {
	rec := scan.Record{Status: scan.StatusSolved, SolutionText: "2 + 2 = 4"}
	if got := renderDetail(rec); got != "2 + 2 = 4" {
		t.Fatalf("short solution altered: %q", got)
	}
}

func TestRenderDetailFailedShowsErrorMessage(t *testing.T) {
	rec := scan.Record{Status: scan.StatusFailed, ErrorMessage: "timeout"}
	got := renderDetail(rec)
	if !strings.Contains(got, scan.FailedTitle) || !strings.Contains(got, "timeout") {
		t.Fatalf("failed rendering missing pieces: %q", got)
	}
}
