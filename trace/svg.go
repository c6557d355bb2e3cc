// File: svg.go
package trace

import (
	"fmt"
	"io"
	"sort"
	"text/template"
	"time"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <!-- session {{.SessionID}} -->
{{range .Bars}}  <rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{$.RowHeight}}" fill="{{.Color}}" />
  <text x="{{.X}}" y="{{.TextY}}" font-size="10">{{.Label}}</text>
{{end}}</svg>
`

type svgBar struct {
	X, Y, W, TextY int
	Color          string
	Label          string
}

type svgDoc struct {
	SessionID     string
	Width, Height int
	RowHeight     int
	Bars          []svgBar
}

var svgColors = []string{"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B2", "#937860"}

// WriteSVG renders t as a simple Gantt chart: one horizontal row per PE,
// one bar per scheduled actor, scaled to nsPerPixel nanoseconds per
// pixel.
func WriteSVG(w io.Writer, t *Trace, nsPerPixel time.Duration) error {
	if nsPerPixel <= 0 {
		nsPerPixel = time.Microsecond
	}
	rowOf := make(map[string]int)
	var pes []string
	for _, e := range t.Entries {
		if _, ok := rowOf[e.PE]; !ok {
			rowOf[e.PE] = len(pes)
			pes = append(pes, e.PE)
		}
	}
	sort.Strings(pes)
	for i, pe := range pes {
		rowOf[pe] = i
	}

	const rowHeight = 24
	const leftPad = 4
	doc := svgDoc{
		SessionID: t.SessionID,
		RowHeight: rowHeight,
		Height:    rowHeight*len(pes) + leftPad,
	}
	for i, e := range t.Entries {
		x := leftPad + int(e.Start/nsPerPixel)
		width := int((e.Finish - e.Start) / nsPerPixel)
		if width < 1 {
			width = 1
		}
		y := rowOf[e.PE] * rowHeight
		doc.Bars = append(doc.Bars, svgBar{
			X: x, Y: y, W: width, TextY: y + rowHeight - 6,
			Color: svgColors[i%len(svgColors)],
			Label: fmt.Sprintf("%s@%s", e.Actor, e.PE),
		})
		if right := x + width; right > doc.Width {
			doc.Width = right
		}
	}
	doc.Width += leftPad

	tmpl := template.Must(template.New("gantt").Parse(svgTemplate))
	return tmpl.Execute(w, doc)
}
