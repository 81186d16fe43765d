package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/screencap/internal/capture"
	"github.com/breeze-rmm/screencap/internal/tools"
)

var (
	monitorName    string
	monitorPrimary bool
	monitorAt      string
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List attached monitors",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		monitors, err := svc.ListMonitors()
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdListMonitors, err, time.Since(start).Milliseconds()))
			return
		}
		emit(tools.NewSuccessResult(tools.CmdListMonitors, monitors, time.Since(start).Milliseconds()))
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Show one monitor, selected by name, primary flag or point (default primary)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		info, err := selectMonitor()
		if err != nil && capture.KindOf(err) == capture.KindUnknown {
			return err
		}
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdGetMonitor, err, time.Since(start).Milliseconds()))
			return nil
		}
		emit(tools.NewSuccessResult(tools.CmdGetMonitor, info, time.Since(start).Milliseconds()))
		return nil
	},
}

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Show the working area and the virtual desktop rectangle",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		area, err := svc.WorkingArea()
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdBounds, err, time.Since(start).Milliseconds()))
			return
		}
		virtual, err := svc.VirtualBounds()
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdBounds, err, time.Since(start).Milliseconds()))
			return
		}
		emit(tools.NewSuccessResult(tools.CmdBounds, tools.BoundsResponse{
			WorkingArea: area,
			Virtual:     virtual,
		}, time.Since(start).Milliseconds()))
	},
}

func init() {
	addMonitorSelectors(monitorCmd)
}

// addMonitorSelectors registers the mutually exclusive --name, --primary
// and --at flags shared by "monitor" and "capture monitor".
func addMonitorSelectors(cmd *cobra.Command) {
	cmd.Flags().StringVar(&monitorName, "name", "", "monitor name")
	cmd.Flags().BoolVar(&monitorPrimary, "primary", false, "the primary monitor")
	cmd.Flags().StringVar(&monitorAt, "at", "", "the monitor containing point X,Y")
	cmd.MarkFlagsMutuallyExclusive("name", "primary", "at")
}

// selectMonitor resolves the selector flags. Flag parse errors are returned
// untyped; everything else is a capture error.
func selectMonitor() (capture.MonitorInfo, error) {
	switch {
	case monitorName != "":
		return svc.MonitorByName(monitorName)
	case monitorAt != "":
		x, y, err := parsePoint(monitorAt)
		if err != nil {
			return capture.MonitorInfo{}, err
		}
		return svc.MonitorAt(x, y)
	default:
		return svc.PrimaryMonitor()
	}
}
