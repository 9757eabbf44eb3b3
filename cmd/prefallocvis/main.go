// Command prefallocvis provides a GUI view of allocation results.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/prefalloc/internal/core"
	"github.com/elektrokombinacija/prefalloc/internal/vis"
)

func main() {
	instPath := flag.String("instance", "", "Instance JSON file (default: built-in demo)")
	flag.Parse()

	var inst *core.Instance
	if *instPath != "" {
		_, loaded, err := core.LoadInstance(*instPath)
		if err != nil {
			log.Fatal(err)
		}
		inst = loaded
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Allocation Visualizer"),
			app.Size(unit.Dp(900), unit.Dp(700)),
		)

		application := vis.NewApp(inst)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
