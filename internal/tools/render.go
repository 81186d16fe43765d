package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/breeze-rmm/screencap/internal/capture"
	"github.com/breeze-rmm/screencap/internal/health"
)

// Output formats
const (
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// Render writes res to w as json, yaml or a table.
func Render(w io.Writer, output string, res CommandResult) error {
	switch strings.ToLower(output) {
	case "", OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable:
		_, err := io.WriteString(w, renderTable(res)+"\n")
		return err
	default:
		return fmt.Errorf("unsupported output format %q (want json, yaml or table)", output)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func renderTable(res CommandResult) string {
	if report, ok := res.Data.(health.Report); ok {
		return healthTable(report)
	}
	if res.Failed() {
		t := newTable()
		t.AppendHeader(table.Row{"Command", "Status", "Kind", "Error"})
		t.AppendRow(table.Row{res.Command, res.Status, res.ErrorKind, res.Error})
		return t.Render()
	}

	switch data := res.Data.(type) {
	case []capture.MonitorInfo:
		return monitorTable(data...)
	case capture.MonitorInfo:
		return monitorTable(data)
	case []capture.WindowInfo:
		return windowTable(data...)
	case capture.WindowInfo:
		return windowTable(data)
	case BoundsResponse:
		t := newTable()
		t.AppendHeader(table.Row{"Area", "Name", "X", "Y", "Width", "Height"})
		wa := data.WorkingArea
		t.AppendRow(table.Row{"working area", wa.Name, wa.X, wa.Y, wa.Width, wa.Height})
		v := data.Virtual
		t.AppendRow(table.Row{"virtual desktop", "", v.X, v.Y, v.Width, v.Height})
		return t.Render()
	case ScreenshotResponse:
		t := newTable()
		t.AppendHeader(table.Row{"Source", "Width", "Height", "Format", "Bytes", "Captured"})
		t.AppendRow(table.Row{data.Source, data.Width, data.Height, data.Format, data.SizeBytes, data.CapturedAt})
		return t.Render()
	case VersionInfo:
		t := newTable()
		t.AppendHeader(table.Row{"Version", "OS", "Arch"})
		t.AppendRow(table.Row{data.Version, data.OS, data.Arch})
		return t.Render()
	default:
		t := newTable()
		t.AppendHeader(table.Row{"Command", "Status", "Duration (ms)"})
		t.AppendRow(table.Row{res.Command, res.Status, res.DurationMs})
		return t.Render()
	}
}

func healthTable(r health.Report) string {
	t := newTable()
	t.AppendHeader(table.Row{"Check", "Status", "Message", "ms"})
	for _, c := range r.Checks {
		t.AppendRow(table.Row{c.Name, c.Status, c.Message, c.DurationMs})
	}
	t.AppendFooter(table.Row{"overall", r.Status, "", ""})
	return t.Render()
}

func monitorTable(monitors ...capture.MonitorInfo) string {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Name", "X", "Y", "Width", "Height", "Primary"})
	for _, m := range monitors {
		t.AppendRow(table.Row{m.Index, m.Name, m.X, m.Y, m.Width, m.Height, yesNo(m.IsPrimary)})
	}
	return t.Render()
}

func windowTable(windows ...capture.WindowInfo) string {
	t := newTable()
	t.AppendHeader(table.Row{"Z", "Handle", "PID", "App", "Title", "X", "Y", "Width", "Height", "State"})
	for _, w := range windows {
		t.AppendRow(table.Row{
			w.Z,
			fmt.Sprintf("0x%x", w.Handle),
			w.PID,
			w.AppName,
			truncate(w.Title, 48),
			w.X, w.Y, w.Width, w.Height,
			windowState(w),
		})
	}
	return t.Render()
}

func windowState(w capture.WindowInfo) string {
	var states []string
	if w.IsFocused {
		states = append(states, "focused")
	}
	if w.IsMinimized {
		states = append(states, "minimized")
	}
	if w.IsMaximized {
		states = append(states, "maximized")
	}
	return strings.Join(states, ",")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
