package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Setup routes log output to both the console and a timestamped file under
// dir, creating the directory if needed. It returns the file path and a
// closer for the file handle. Concurrent units share the sink; logrus
// serializes entries, so lines never interleave.
func Setup(dir string) (string, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("kachaka_map_transfer_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return path, f.Close, nil
}
