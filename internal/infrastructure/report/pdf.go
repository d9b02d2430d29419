// Package report renders match reports as PDF documents: a header with the
// fixture details, the scoreboard in Gaelic goals-points notation, per-team
// shot maps and the chronological event table.
package report

import (
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/valyala/bytebufferpool"

	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/pitch"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

const (
	pageMargin  = 15.0
	rowHeight   = 7.0
	headerFill  = 230
	zebraFill   = 245
	titleSize   = 16.0
	bodySize    = 10.0
	footerSize  = 8.0
	clockColW   = 22.0
	teamColW    = 45.0
	playerColW  = 50.0
	typeColW    = 35.0
	subtypeColW = 28.0

	shotMapGap   = 8.0
	markerRadius = 1.6
	legendColW   = 30.0
)

// shotMapTypes are the shooting actions plotted on the report's pitch
// drawings, in legend order.
var shotMapTypes = []action.Type{
	action.TypeGoal,
	action.TypePoint,
	action.TypeMissedShot,
}

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(data usecase.ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	r.header(pdf, data)
	r.scoreboard(pdf, data)
	r.shotMaps(pdf, data)
	r.events(pdf, data)
	r.footer(pdf, data)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func (r *PDFRenderer) header(pdf *fpdf.Fpdf, data usecase.ReportData) {
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, 10, "Match Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s vs %s", data.HomeTeam, data.AwayTeam), "", 1, "C", false, 0, "")

	line := data.Match.KickoffAt.Format("2 January 2006 15:04")
	if data.Match.Location != "" {
		line += " - " + data.Match.Location
	}
	pdf.CellFormat(0, 6, line, "", 1, "C", false, 0, "")
	if data.Match.Competition != "" {
		pdf.CellFormat(0, 6, data.Match.Competition, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) scoreboard(pdf *fpdf.Fpdf, data usecase.ReportData) {
	pdf.SetFont("Helvetica", "B", bodySize)
	pdf.SetFillColor(headerFill, headerFill, headerFill)

	half := (contentWidth(pdf) - clockColW) / 2
	pdf.CellFormat(clockColW, rowHeight, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(half, rowHeight, data.HomeTeam, "1", 0, "C", true, 0, "")
	pdf.CellFormat(half, rowHeight, data.AwayTeam, "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.CellFormat(clockColW, rowHeight, "Score", "1", 0, "C", false, 0, "")
	pdf.CellFormat(half, rowHeight, data.Scoreboard.Home.Scoreline(), "1", 0, "C", false, 0, "")
	pdf.CellFormat(half, rowHeight, data.Scoreboard.Away.Scoreline(), "1", 1, "C", false, 0, "")
	pdf.Ln(6)
}

// shotMaps draws one schematic pitch per team with the positioned shooting
// actions plotted at their stored coordinates, plus a shared legend.
func (r *PDFRenderer) shotMaps(pdf *fpdf.Fpdf, data usecase.ReportData) {
	pdf.SetFont("Helvetica", "B", bodySize)
	pdf.CellFormat(0, rowHeight, "Shot maps", "", 1, "L", false, 0, "")

	mapW := (contentWidth(pdf) - shotMapGap) / 2
	mapH := mapW * pitch.SurfaceHeight / pitch.SurfaceWidth
	top := pdf.GetY()

	r.shotMap(pdf, pageMargin, top, mapW, mapH, data.HomeTeam, data.Events)
	r.shotMap(pdf, pageMargin+mapW+shotMapGap, top, mapW, mapH, data.AwayTeam, data.Events)

	pdf.SetXY(pageMargin, top+mapH+8)
	r.shotMapLegend(pdf)
	pdf.Ln(8)
}

func (r *PDFRenderer) shotMap(pdf *fpdf.Fpdf, left, top, w, h float64, teamName string, events []usecase.ReportEvent) {
	pdf.SetFont("Helvetica", "", footerSize)
	pdf.SetXY(left, top)
	pdf.CellFormat(w, 5, teamName, "", 0, "C", false, 0, "")

	boxTop := top + 6
	pdf.SetDrawColor(60, 60, 60)
	pdf.Rect(left, boxTop, w, h, "D")
	pdf.Line(left+w/2, boxTop, left+w/2, boxTop+h)
	thirteen := 13.0 / pitch.SurfaceWidth * w
	pdf.Line(left+thirteen, boxTop, left+thirteen, boxTop+h)
	pdf.Line(left+w-thirteen, boxTop, left+w-thirteen, boxTop+h)

	for _, ev := range events {
		if !ev.HasPosition || ev.TeamName != teamName || !isShotMapType(ev.Type) {
			continue
		}
		red, green, blue := hexRGB(pitch.StyleFor(ev.Type).Fill)
		pdf.SetFillColor(red, green, blue)

		px, py := pitch.Project(pitch.Point{X: ev.X, Y: ev.Y})
		cx := left + px/pitch.SurfaceWidth*w
		cy := boxTop + py/pitch.SurfaceHeight*h
		pdf.Circle(cx, cy, markerRadius, "F")
	}
}

func (r *PDFRenderer) shotMapLegend(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", footerSize)
	x := pageMargin
	y := pdf.GetY()
	for _, t := range shotMapTypes {
		style := pitch.StyleFor(t)
		red, green, blue := hexRGB(style.Fill)
		pdf.SetFillColor(red, green, blue)
		pdf.Circle(x+markerRadius, y+2.5, markerRadius, "F")
		pdf.SetXY(x+2*markerRadius+1.5, y)
		pdf.CellFormat(legendColW, 5, style.Label, "", 0, "L", false, 0, "")
		x += legendColW
	}
	pdf.SetXY(pageMargin, y+6)
}

func (r *PDFRenderer) events(pdf *fpdf.Fpdf, data usecase.ReportData) {
	pdf.SetFont("Helvetica", "B", bodySize)
	pdf.CellFormat(0, rowHeight, "Events", "", 1, "L", false, 0, "")

	pdf.SetFillColor(headerFill, headerFill, headerFill)
	pdf.CellFormat(clockColW, rowHeight, "Time", "1", 0, "C", true, 0, "")
	pdf.CellFormat(teamColW, rowHeight, "Team", "1", 0, "C", true, 0, "")
	pdf.CellFormat(playerColW, rowHeight, "Player", "1", 0, "C", true, 0, "")
	pdf.CellFormat(typeColW, rowHeight, "Action", "1", 0, "C", true, 0, "")
	pdf.CellFormat(subtypeColW, rowHeight, "Detail", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", bodySize)
	if len(data.Events) == 0 {
		pdf.CellFormat(0, rowHeight, "No events recorded", "1", 1, "C", false, 0, "")
		return
	}

	pdf.SetFillColor(zebraFill, zebraFill, zebraFill)
	for i, ev := range data.Events {
		fill := i%2 == 1
		pdf.CellFormat(clockColW, rowHeight, ev.ClockLabel, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(teamColW, rowHeight, ev.TeamName, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(playerColW, rowHeight, ev.PlayerLabel, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(typeColW, rowHeight, ev.TypeLabel, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(subtypeColW, rowHeight, ev.DetailLabel, "1", 1, "L", fill, 0, "")
	}
}

func (r *PDFRenderer) footer(pdf *fpdf.Fpdf, data usecase.ReportData) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", footerSize)
	pdf.CellFormat(0, 5, "Generated "+data.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "R", false, 0, "")
}

func contentWidth(pdf *fpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return w - left - right
}

func isShotMapType(t action.Type) bool {
	for _, st := range shotMapTypes {
		if st == t {
			return true
		}
	}
	return false
}

// hexRGB splits a #rrggbb marker color into components; malformed values
// fall back to a neutral grey.
func hexRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 120, 120, 120
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 120, 120, 120
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}
