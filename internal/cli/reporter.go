package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ytget/asset-fetcher/internal/download"
	"github.com/ytget/asset-fetcher/internal/model"
)

// Reporter prints one status line per finished file and a run summary.
// It is safe for concurrent use.
type Reporter struct {
	out io.Writer
	mu  sync.Mutex

	ok   *color.Color
	skip *color.Color
	fail *color.Color
	info *color.Color
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	r := &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen),
		skip: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
		info: color.New(color.FgCyan),
	}
	if !isTerminal(out) {
		for _, c := range []*color.Color{r.ok, r.skip, r.fail, r.info} {
			c.DisableColor()
		}
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ContentID prints the resolved content id
func (r *Reporter) ContentID(sha string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info.Fprintf(r.out, "SHA: %s\n", sha)
}

// Update is the download service callback. Only terminal states are printed.
func (r *Reporter) Update(task *model.FetchTask) {
	if !task.Status.IsFinished() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch task.Status {
	case model.FetchStatusSkipped:
		r.skip.Fprintf(r.out, "%s exists.\n", task.Path)
	case model.FetchStatusCompleted:
		r.ok.Fprintf(r.out, "Downloaded %s: Status %d\n", task.GetDisplayName(), task.StatusCode)
	case model.FetchStatusError:
		r.fail.Fprintf(r.out, "ERROR on %s: %s\n", task.GetDisplayName(), describeFailure(task))
	}
}

// Summary prints the final counts of a run
func (r *Reporter) Summary(report *model.BatchReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := fmt.Sprintf("%s: %d downloaded, %d skipped, %d failed of %d files in %s\n",
		report.ContentID, report.Completed, report.Skipped, report.Failed, report.Total,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	if report.Failed > 0 {
		r.fail.Fprint(r.out, line)
		return
	}
	r.ok.Fprint(r.out, line)
}

func describeFailure(task *model.FetchTask) string {
	if download.Classify(task.Err) == download.KindHTTP {
		return fmt.Sprintf("Status %d", task.StatusCode)
	}
	return task.LastError
}
