package persist

import (
	"log/slog"
	"sync"
)

// Reporter receives non-fatal problems for display to the user.
type Reporter interface {
	Report(title, message string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(title, message string)

func (f ReporterFunc) Report(title, message string) { f(title, message) }

// LogReporter reports through slog at warn level.
var LogReporter Reporter = ReporterFunc(func(title, message string) {
	slog.Warn(message, "title", title)
})

// Report is one reported problem.
type Report struct {
	Title   string
	Message string
}

// Recorder collects reports in order.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) Report(title, message string) {
	r.mu.Lock()
	r.reports = append(r.reports, Report{Title: title, Message: message})
	r.mu.Unlock()
}

// Reports returns a copy of the collected reports.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.reports...)
}
