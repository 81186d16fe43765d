package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/screencap/internal/capture"
	"github.com/breeze-rmm/screencap/internal/tools"
)

var (
	windowHandle string
	windowAt     string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture pixels from a monitor, the desktop, a window or a region",
}

var captureMonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Capture one monitor, selected by name, primary flag or point (default primary)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		var (
			img    *capture.Image
			err    error
			source string
		)
		switch {
		case monitorName != "":
			source = "monitor " + monitorName
			img, err = svc.CaptureMonitor(monitorName)
		case monitorAt != "":
			x, y, perr := parsePoint(monitorAt)
			if perr != nil {
				return perr
			}
			source = fmt.Sprintf("monitor at %d,%d", x, y)
			img, err = svc.CaptureMonitorAt(x, y)
		default:
			source = "primary monitor"
			img, err = svc.CapturePrimaryMonitor()
		}
		emitImage(tools.CmdCaptureMonitor, source, img, err, time.Since(start).Milliseconds())
		return nil
	},
}

var captureDesktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Capture every monitor composited at its desktop offset",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		img, err := svc.CaptureVirtualDesktop()
		emitImage(tools.CmdCaptureVirtualDesktop, "virtual desktop", img, err, time.Since(start).Milliseconds())
	},
}

var captureWindowCmd = &cobra.Command{
	Use:   "window",
	Short: "Capture a window by handle or by point",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		var (
			img    *capture.Image
			err    error
			source string
		)
		switch {
		case windowHandle != "":
			h, perr := parseHandle(windowHandle)
			if perr != nil {
				return perr
			}
			source = fmt.Sprintf("window 0x%x", h)
			img, err = svc.CaptureWindowByHandle(h)
		case windowAt != "":
			x, y, perr := parsePoint(windowAt)
			if perr != nil {
				return perr
			}
			source = fmt.Sprintf("window at %d,%d", x, y)
			img, err = svc.CaptureWindowAt(x, y)
		default:
			return errors.New("one of --handle or --at is required")
		}
		emitImage(tools.CmdCaptureWindow, source, img, err, time.Since(start).Milliseconds())
		return nil
	},
}

var captureRectCmd = &cobra.Command{
	Use:   "rect X Y W H",
	Short: "Capture a region that lies on a single monitor",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseInts(args)
		if err != nil {
			return err
		}
		start := time.Now()
		img, err := svc.CaptureRect(v[0], v[1], v[2], v[3])
		source := fmt.Sprintf("rect %dx%d+%d+%d", v[2], v[3], v[0], v[1])
		emitImage(tools.CmdCaptureRect, source, img, err, time.Since(start).Milliseconds())
		return nil
	},
}

func init() {
	addMonitorSelectors(captureMonitorCmd)

	captureWindowCmd.Flags().StringVar(&windowHandle, "handle", "", "window handle (decimal or 0x hex)")
	captureWindowCmd.Flags().StringVar(&windowAt, "at", "", "the frontmost window under point X,Y")
	captureWindowCmd.MarkFlagsMutuallyExclusive("handle", "at")
	captureWindowCmd.MarkFlagsOneRequired("handle", "at")

	captureCmd.AddCommand(captureMonitorCmd)
	captureCmd.AddCommand(captureDesktopCmd)
	captureCmd.AddCommand(captureWindowCmd)
	captureCmd.AddCommand(captureRectCmd)
}
