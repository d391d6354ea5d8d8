package archive

import (
	"os"
	"path/filepath"
	"time"

	"github.com/samvad-hq/samvad-news-digest/internal/logger"
)

const (
	filenamePrefix    = "news_summary_"
	filenameExt       = ".txt"
	timestampLayout   = "20060102_150405"
	summaryFileMode   = 0o644
	outputDirFileMode = 0o755
)

// Writer persists digest text to timestamped files in the output directory.
// A failed write is logged and swallowed; it never aborts the pipeline.
// Two saves within the same second target the same file and the later one
// wins, which is an accepted limitation of the second-precision naming.
type Writer struct {
	dir string
	now func() time.Time
	log logger.Logger
}

// NewWriter builds a Writer for the given output directory.
func NewWriter(dir string, log logger.Logger) *Writer {
	if dir == "" {
		dir = "."
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{
		dir: dir,
		now: time.Now,
		log: log,
	}
}

// Save writes the summary as UTF-8 text to a new timestamped file. It returns
// the filename and whether the write succeeded.
func (w *Writer) Save(summary string) (string, bool) {
	filename := filepath.Join(w.dir, filenamePrefix+w.now().Format(timestampLayout)+filenameExt)

	if err := os.MkdirAll(w.dir, outputDirFileMode); err != nil {
		w.log.ErrorObj("create output directory failed", "save_error", map[string]any{
			"dir":   w.dir,
			"error": err.Error(),
		})
		return filename, false
	}

	if err := os.WriteFile(filename, []byte(summary), summaryFileMode); err != nil {
		w.log.ErrorObj("save summary failed", "save_error", map[string]any{
			"filename": filename,
			"error":    err.Error(),
		})
		return filename, false
	}

	w.log.InfoObj("summary saved", "filename", filename)
	return filename, true
}
