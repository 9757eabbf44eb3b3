// Package vis implements a Gio-based visualization for allocation results.
package vis

import (
	"fmt"
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/prefalloc/internal/algo"
	"github.com/elektrokombinacija/prefalloc/internal/core"
	"github.com/elektrokombinacija/prefalloc/internal/report"
	"github.com/elektrokombinacija/prefalloc/internal/vis/widgets"
)

// App displays rank and owner-load histograms for an allocation. Left and
// right arrows cycle through the solvers to compare their results.
type App struct {
	inst    *core.Instance
	theme   *material.Theme
	solvers []algo.Solver
	current int

	summary   *report.Summary
	rankChart *widgets.BarChart
	loadChart *widgets.BarChart
	status    string
}

var (
	colorRankBar = color.NRGBA{R: 100, G: 160, B: 220, A: 255}
	colorLoadOK  = color.NRGBA{R: 90, G: 180, B: 110, A: 255}
	colorLoadHot = color.NRGBA{R: 220, G: 140, B: 80, A: 255}
)

// NewApp creates the visualizer for an instance. With a nil instance a
// built-in demo is used.
func NewApp(inst *core.Instance) *App {
	if inst == nil {
		inst = createDemoInstance()
	}

	a := &App{
		inst:  inst,
		theme: material.NewTheme(),
		solvers: []algo.Solver{
			algo.NewMinCostFlow(),
			algo.NewGreedy(),
		},
	}
	a.resolve()
	return a
}

// resolve runs the current solver and rebuilds the charts.
func (a *App) resolve() {
	solver := a.solvers[a.current]
	alloc, err := solver.Solve(a.inst)
	if alloc == nil {
		a.status = fmt.Sprintf("%s: %v", solver.Name(), err)
		return
	}

	a.summary = report.Summarize(a.inst, alloc)
	a.status = fmt.Sprintf("%s: assigned %d/%d, total cost %d, mean rank %.2f",
		solver.Name(), a.summary.Assigned, a.summary.Requesters,
		a.summary.TotalCost, a.summary.MeanRank)

	rank := &widgets.BarChart{Title: "Realized preference rank (% of requesters)"}
	for r, pct := range a.summary.RankPercent {
		label := fmt.Sprintf("rank %d", r)
		if r == len(a.summary.RankPercent)-1 {
			label = "unranked"
		}
		rank.Bars = append(rank.Bars, widgets.Bar{
			Label: label,
			Value: pct,
			Max:   100,
			Color: colorRankBar,
			Note:  fmt.Sprintf("%.1f%%", pct),
		})
	}
	a.rankChart = rank

	load := &widgets.BarChart{Title: "Owner load vs capacity"}
	for _, l := range a.summary.Loads {
		col := colorLoadOK
		if l.Capacity > 0 && l.Load == l.Capacity {
			col = colorLoadHot
		}
		load.Bars = append(load.Bars, widgets.Bar{
			Label: fmt.Sprintf("owner %d", l.Owner),
			Value: float64(l.Load),
			Max:   float64(l.Capacity),
			Color: col,
			Note:  fmt.Sprintf("%d/%d", l.Load, l.Capacity),
		})
	}
	a.loadChart = load
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
					w.Invalidate()
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameRightArrow:
		a.current = (a.current + 1) % len(a.solvers)
		a.resolve()
	case key.NameLeftArrow:
		a.current = (a.current + len(a.solvers) - 1) % len(a.solvers)
		a.resolve()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				status := material.Body1(a.theme, a.status+"  (←/→ switch solver)")
				status.Color = color.NRGBA{R: 220, G: 224, B: 230, A: 255}
				return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, status.Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.rankChart == nil {
					return layout.Dimensions{}
				}
				return a.rankChart.Layout(gtx, a.theme)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(24)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.loadChart == nil {
					return layout.Dimensions{}
				}
				return a.loadChart.Layout(gtx, a.theme)
			}),
		)
	})
}

// createDemoInstance builds a default instance for the visualizer.
func createDemoInstance() *core.Instance {
	inst := core.NewInstance()
	inst.Resources = 8
	inst.MaxPrefs = 3
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{0, 1, 2}},
		{ID: 1, Prefs: []core.ResourceID{0, 2, 3}},
		{ID: 2, Prefs: []core.ResourceID{1, 0, 4}},
		{ID: 3, Prefs: []core.ResourceID{0, 1, 5}},
		{ID: 4, Prefs: []core.ResourceID{6, 0, 1}},
		{ID: 5, Prefs: []core.ResourceID{2, 3, 7}},
	}
	inst.Owners = []*core.Owner{
		{ID: 0, Resources: []core.ResourceID{0, 1, 2}, Capacity: 2},
		{ID: 1, Resources: []core.ResourceID{3, 4, 5}, Capacity: 2},
		{ID: 2, Resources: []core.ResourceID{6, 7}, Capacity: core.Unbounded},
	}
	return inst
}
