// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelwin-stress/main.go
// Summary: Headless stress harness exercising the compositor pipeline.

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelwin/texelwin"
)

func main() {
	frames := flag.Int("frames", 1000, "number of frames to render")
	windows := flag.Int("windows", 16, "number of live windows")
	width := flag.Int("width", 160, "simulated terminal width")
	height := flag.Int("height", 48, "simulated terminal height")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	sim := tcell.NewSimulationScreen("UTF-8")
	sim.SetSize(*width, *height)
	scr, err := texelwin.NewScreenWithDriver(texelwin.NewTcellScreenDriver(sim))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing simulation screen: %v\n", err)
		os.Exit(1)
	}
	defer scr.Close()

	rng := rand.New(rand.NewSource(*seed))
	reg := scr.Registry()

	ids := make([]texelwin.WindowID, 0, *windows)
	for len(ids) < *windows {
		id, err := scr.AddWindow(
			rng.Intn(*width)-10, rng.Intn(*height)-5, rng.Intn(8),
			5+rng.Intn(40), 3+rng.Intn(12),
			texelwin.WindowAttrs{
				Bordered: rng.Intn(2) == 0,
				Titled:   true,
				Title:    fmt.Sprintf("w%d", len(ids)),
				Fg:       texelwin.Color(rng.Intn(16)),
				Bg:       texelwin.ColorDefault,
			}, nil)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	start := time.Now()
	for frame := 0; frame < *frames; frame++ {
		// Random churn: move, restack, retitle, write, occasionally
		// destroy and recreate.
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(6) {
		case 0:
			win, err := reg.Get(id)
			if err == nil {
				b := win.Bounds()
				_ = reg.SetGeometry(id, b.X+rng.Intn(5)-2, b.Y+rng.Intn(3)-1, b.W, b.H)
			}
		case 1:
			_ = reg.SetZ(id, rng.Intn(8))
		case 2:
			_ = reg.SetTitle(id, fmt.Sprintf("w%d f%d", id, frame))
		case 3:
			_ = reg.SetVisible(id, rng.Intn(4) != 0)
		case 4:
			_ = reg.WriteString(id, rng.Intn(30), rng.Intn(8),
				fmt.Sprintf("frame %d", frame),
				texelwin.Color(rng.Intn(16)), texelwin.ColorDefault, 0)
		case 5:
			if err := scr.DestroyWindow(id); err == nil {
				nid, err := scr.AddWindow(
					rng.Intn(*width)-10, rng.Intn(*height)-5, rng.Intn(8),
					5+rng.Intn(40), 3+rng.Intn(12),
					texelwin.WindowAttrs{Bordered: true, Titled: true, Title: "respawn"}, nil)
				if err == nil {
					for i, v := range ids {
						if v == id {
							ids[i] = nid
						}
					}
				}
			}
		}
		if err := scr.Redraw(); err != nil {
			fmt.Fprintf(os.Stderr, "Redraw failed at frame %d: %v\n", frame, err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("rendered %d frames over %d windows in %v (%.1f fps)\n",
		*frames, *windows, elapsed, float64(*frames)/elapsed.Seconds())
}
