package tools

import "github.com/breeze-rmm/screencap/internal/capture"

// Process exit codes, one per capture error kind.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitNotFound        = 2
	ExitAmbiguous       = 3
	ExitBoundsViolation = 4
	ExitCaptureFailed   = 5
	ExitUnavailable     = 6
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch capture.KindOf(err) {
	case capture.KindNotFound:
		return ExitNotFound
	case capture.KindAmbiguous:
		return ExitAmbiguous
	case capture.KindBoundsViolation:
		return ExitBoundsViolation
	case capture.KindCaptureFailed:
		return ExitCaptureFailed
	case capture.KindUnavailable:
		return ExitUnavailable
	default:
		return ExitFailure
	}
}
