package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/roffe/golin"
	"github.com/spf13/cobra"
)

var (
	monitorMu     sync.Mutex
	monitorFilter = -1 // -1 = show everything
	frameCount    int64
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Full screen live view of bus traffic",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newController(cmd)
		if err != nil {
			return err
		}

		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		g.Cursor = true
		defer g.Close()

		g.SetManagerFunc(monitorLayout)

		if err := monitorKeybindings(g); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go monitorPump(ctx, c, g)

		if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func inMonitorFilter(id uint8) bool {
	monitorMu.Lock()
	defer monitorMu.Unlock()
	return monitorFilter < 0 || monitorFilter == int(id)
}

func monitorPump(ctx context.Context, c *golin.Controller, g *gocui.Gui) {
	for ctx.Err() == nil {
		f, err := c.Listen()
		if errors.Is(err, golin.ErrTimeout) || errors.Is(err, golin.ErrNoHeader) {
			continue
		}
		if err != nil {
			g.Update(func(g *gocui.Gui) error {
				if v, verr := g.View("errors"); verr == nil {
					fmt.Fprintln(v, err)
				}
				return nil
			})
			return
		}
		atomic.AddInt64(&frameCount, 1)
		if !inMonitorFilter(f.ID) {
			continue
		}

		ff := *f // capture before the next exchange overwrites anything
		g.Update(func(g *gocui.Gui) error {
			frames, err := g.View("frames")
			if err != nil {
				return err
			}
			fmt.Fprintf(frames, " %s || %s\n", time.Now().Format("15:04:05.00000"), ff.String())

			info, err := g.View("info")
			if err != nil {
				return err
			}
			info.Clear()
			fmt.Fprintf(info, "frames: %d\n", atomic.LoadInt64(&frameCount))
			monitorMu.Lock()
			if monitorFilter >= 0 {
				fmt.Fprintf(info, "filter: 0x%02X\n", monitorFilter)
			} else {
				fmt.Fprintln(info, "filter: off")
			}
			monitorMu.Unlock()
			return nil
		})
	}
}

func monitorLayout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView("info", 0, 0, 25, 4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Autoscroll = false
		v.Title = "Info"
	}

	if v, err := g.SetView("filter", 0, 5, 25, 7); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Editable = true
		v.Title = "Filter (id)"
	}

	if v, err := g.SetView("help", 0, maxY-12, 25, maxY-7); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
		v.Title = "Help"
		fmt.Fprintln(v, "<Q, Ctrl-C> Quit")
		fmt.Fprintln(v, "<Space> Autoscroll")
		fmt.Fprintln(v, "<Ctrl-F> Set filter")
		fmt.Fprintln(v, "<C> Clear")
	}

	if v, err := g.SetView("errors", 0, maxY-6, 25, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
		v.Title = "Errors"
	}

	if v, err := g.SetView("frames", 26, 0, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Autoscroll = true
		v.Title = "Frame view"
		if _, err := g.SetCurrentView("frames"); err != nil {
			return err
		}
	}

	return nil
}

func setMonitorFilter(g *gocui.Gui, v *gocui.View) error {
	buff := strings.TrimSpace(strings.TrimRight(v.Buffer(), "\n"))
	monitorMu.Lock()
	if buff == "" {
		monitorFilter = -1
	} else {
		id, err := strconv.ParseUint(strings.TrimPrefix(buff, "0x"), 16, 8)
		if err != nil || id > golin.MaxFrameID {
			monitorMu.Unlock()
			if ev, verr := g.View("errors"); verr == nil {
				fmt.Fprintf(ev, "bad filter %q\n", buff)
			}
			return nil
		}
		monitorFilter = int(id)
	}
	monitorMu.Unlock()
	v.Clear()
	v.SetCursor(0, 0)
	_, err := g.SetCurrentView("frames")
	return err
}

func monitorKeybindings(g *gocui.Gui) error {
	quit := func(g *gocui.Gui, v *gocui.View) error {
		return gocui.ErrQuit
	}
	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}
	if err := g.SetKeybinding("frames", gocui.KeyCtrlF, gocui.ModNone,
		func(g *gocui.Gui, v *gocui.View) error {
			_, err := g.SetCurrentView("filter")
			return err
		}); err != nil {
		return err
	}
	if err := g.SetKeybinding("filter", gocui.KeyEnter, gocui.ModNone, setMonitorFilter); err != nil {
		return err
	}
	if err := g.SetKeybinding("frames", gocui.KeySpace, gocui.ModNone,
		func(g *gocui.Gui, v *gocui.View) error {
			v.Autoscroll = !v.Autoscroll
			return nil
		}); err != nil {
		return err
	}
	if err := g.SetKeybinding("frames", 'c', gocui.ModNone,
		func(g *gocui.Gui, v *gocui.View) error {
			v.Autoscroll = true
			v.Clear()
			v.SetOrigin(0, 0)
			return nil
		}); err != nil {
		return err
	}
	return nil
}
