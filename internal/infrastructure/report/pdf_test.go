package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

func sampleData() usecase.ReportData {
	return usecase.ReportData{
		Match: match.Match{
			ID:          "m1",
			HomeTeamID:  "t1",
			AwayTeamID:  "t2",
			KickoffAt:   time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC),
			Location:    "A Madroa, Vigo",
			Competition: "Liga Galega",
		},
		HomeTeam: "Keltoi GAA",
		AwayTeam: "Fillos de Breogan",
		Scoreboard: action.Scoreboard{
			Home: action.Score{Goals: 2, Points: 5},
			Away: action.Score{Goals: 1, Points: 9},
		},
		Events: []usecase.ReportEvent{
			{ClockLabel: "3' 20''", TeamName: "Keltoi GAA", PlayerLabel: "#7 Iago Souto", Type: action.TypeGoal, TypeLabel: "Goal", DetailLabel: "Foot", HasPosition: true, X: 88, Y: 52},
			{ClockLabel: "7' 0''", TeamName: "Fillos de Breogan", PlayerLabel: "#9 Breixo Lema", Type: action.TypeMissedShot, TypeLabel: "Missed shot", DetailLabel: "Wide", HasPosition: true, X: 12, Y: 40},
			{ClockLabel: "11' 0''", TeamName: "Fillos de Breogan", PlayerLabel: "Team action", Type: action.TypeKickout, TypeLabel: "Kickout", DetailLabel: "-"},
		},
		GeneratedAt: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	doc, err := NewPDFRenderer().Render(sampleData())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", doc[:min(8, len(doc))])
	}
	if len(doc) < 1000 {
		t.Fatalf("suspiciously small document: %d bytes", len(doc))
	}
}

func TestPDFRenderer_RenderEmptyLedger(t *testing.T) {
	data := sampleData()
	data.Events = nil

	doc, err := NewPDFRenderer().Render(data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestPDFRenderer_ShotMapsPlotPositionedShots(t *testing.T) {
	withShots := sampleData()

	withoutShots := sampleData()
	for i := range withoutShots.Events {
		withoutShots.Events[i].HasPosition = false
		withoutShots.Events[i].X = 0
		withoutShots.Events[i].Y = 0
	}

	plotted, err := NewPDFRenderer().Render(withShots)
	if err != nil {
		t.Fatalf("render with coordinates failed: %v", err)
	}
	blank, err := NewPDFRenderer().Render(withoutShots)
	if err != nil {
		t.Fatalf("render without coordinates failed: %v", err)
	}

	// Marker drawing adds page content, so the document with plotted shots
	// must carry more bytes than the one with empty pitches.
	if len(plotted) <= len(blank) {
		t.Fatalf("positioned shots left no trace in the document: %d <= %d bytes", len(plotted), len(blank))
	}
}

func TestHexRGB(t *testing.T) {
	red, green, blue := hexRGB("#22c55e")
	if red != 0x22 || green != 0xc5 || blue != 0x5e {
		t.Fatalf("unexpected components %d %d %d", red, green, blue)
	}

	red, green, blue = hexRGB("nonsense")
	if red != 120 || green != 120 || blue != 120 {
		t.Fatalf("malformed color should fall back to grey, got %d %d %d", red, green, blue)
	}
}
