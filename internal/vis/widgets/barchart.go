// Package widgets provides Gio widgets for the allocation visualizer.
package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Bar is one labelled value in a chart.
type Bar struct {
	Label string
	Value float64
	Max   float64 // Full-width reference; bars are clamped to it
	Color color.NRGBA
	Note  string // Right-hand annotation, e.g. "3/5"
}

// BarChart renders a titled horizontal bar chart.
type BarChart struct {
	Title string
	Bars  []Bar
}

var (
	colorBarTrack = color.NRGBA{R: 50, G: 52, B: 60, A: 255}
	colorBarText  = color.NRGBA{R: 220, G: 224, B: 230, A: 255}
)

const (
	labelWidth = 110
	barHeight  = 22
	rowGap     = 6
)

// Layout draws the chart within the current constraints.
func (c *BarChart) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			title := material.H6(th, c.Title)
			title.Color = colorBarText
			return layout.Inset{Bottom: unit.Dp(8)}.Layout(gtx, title.Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return c.layoutBars(gtx, th)
		}),
	)
}

func (c *BarChart) layoutBars(gtx layout.Context, th *material.Theme) layout.Dimensions {
	var children []layout.FlexChild
	for i := range c.Bars {
		bar := &c.Bars[i]
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return c.layoutBar(gtx, th, bar)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(rowGap)}.Layout),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (c *BarChart) layoutBar(gtx layout.Context, th *material.Theme, bar *Bar) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(labelWidth)
			gtx.Constraints.Max.X = gtx.Dp(labelWidth)
			lbl := material.Body2(th, bar.Label)
			lbl.Color = colorBarText
			return lbl.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			h := gtx.Dp(barHeight)
			w := gtx.Constraints.Max.X

			// Track
			paint.FillShape(gtx.Ops, colorBarTrack,
				clip.Rect(image.Rect(0, 0, w, h)).Op())

			// Filled portion
			frac := 0.0
			if bar.Max > 0 {
				frac = bar.Value / bar.Max
			}
			if frac > 1 {
				frac = 1
			}
			fill := int(frac * float64(w))
			if fill > 0 {
				paint.FillShape(gtx.Ops, bar.Color,
					clip.Rect(image.Rect(0, 0, fill, h)).Op())
			}

			return layout.Dimensions{Size: image.Point{X: w, Y: h}}
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			note := bar.Note
			if note == "" {
				note = fmt.Sprintf("%.1f", bar.Value)
			}
			lbl := material.Body2(th, " "+note)
			lbl.Color = colorBarText
			return lbl.Layout(gtx)
		}),
	)
}
