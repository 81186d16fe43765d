package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/screencap/internal/health"
	"github.com/breeze-rmm/screencap/internal/tools"
)

var doctorCapture bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which capture capabilities work on this desktop",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		report := health.Diagnose(svc, doctorCapture)
		res := tools.NewSuccessResult(tools.CmdDoctor, report, time.Since(start).Milliseconds())
		if report.Status == health.Unhealthy {
			res.Status = tools.StatusFailed
			res.ExitCode = tools.ExitUnavailable
			res.Error = "screen capture is not available"
		}
		emit(res)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorCapture, "capture", false, "also capture the first monitor")
	rootCmd.AddCommand(doctorCmd)
}
