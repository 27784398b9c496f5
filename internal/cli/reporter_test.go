package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/asset-fetcher/internal/download"
	"github.com/ytget/asset-fetcher/internal/model"
)

func TestReporter_Update(t *testing.T) {
	tests := []struct {
		name     string
		task     *model.FetchTask
		expected string
	}{
		{
			name:     "skipped",
			task:     &model.FetchTask{Name: "a.bin", Path: "abc123/a.bin", Status: model.FetchStatusSkipped},
			expected: "abc123/a.bin exists.\n",
		},
		{
			name:     "completed",
			task:     &model.FetchTask{Name: "a.bin", Status: model.FetchStatusCompleted, StatusCode: 200},
			expected: "Downloaded a.bin: Status 200\n",
		},
		{
			name: "http error",
			task: &model.FetchTask{Name: "a.bin", Status: model.FetchStatusError, StatusCode: 404,
				Err: fmt.Errorf("%w: status 404", download.ErrHTTPStatus), LastError: "http error: status 404"},
			expected: "ERROR on a.bin: Status 404\n",
		},
		{
			name: "transport error",
			task: &model.FetchTask{Name: "a.bin", Status: model.FetchStatusError,
				Err: download.ErrTransport, LastError: "transport failure: dial tcp: refused"},
			expected: "ERROR on a.bin: transport failure: dial tcp: refused\n",
		},
		{
			name:     "in progress is not printed",
			task:     &model.FetchTask{Name: "a.bin", Status: model.FetchStatusDownloading},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewReporter(&out).Update(tt.task)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestReporter_Summary(t *testing.T) {
	var out bytes.Buffer
	report := model.NewBatchReport("run", "abc123", 3)
	report.Record(&model.FetchTask{Status: model.FetchStatusCompleted})
	report.Record(&model.FetchTask{Status: model.FetchStatusSkipped})
	report.Record(&model.FetchTask{Status: model.FetchStatusError})
	report.Finish()

	reporter := NewReporter(&out)
	reporter.ContentID("abc123")
	reporter.Summary(report)

	assert.Contains(t, out.String(), "SHA: abc123\n")
	assert.Contains(t, out.String(), "abc123: 1 downloaded, 1 skipped, 1 failed of 3 files")
}
