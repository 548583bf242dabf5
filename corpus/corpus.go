// Package corpus enumerates the benchmark sample files.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sample is a single input file in the benchmark corpus. Samples are
// read-only once enumerated; every run works on its own copy.
type Sample struct {
	Path      string
	Name      string
	SizeBytes int64
}

// SizeMB returns the sample size in whole megabytes.
func (s Sample) SizeMB() int64 {
	return s.SizeBytes / (1024 * 1024)
}

// Scan lists the files directly under dir whose names end in ext
// (case-insensitive), in ascending name order. Subdirectories are not
// descended into. A missing directory is an error, not an empty corpus.
func Scan(dir, ext string) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read samples dir %s: %w", dir, err)
	}

	suffix := strings.ToLower(ext)
	samples := make([]Sample, 0, len(entries))

	// os.ReadDir returns entries sorted by name, which is the order the
	// benchmark processes samples in.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat sample %s: %w", entry.Name(), err)
		}

		samples = append(samples, Sample{
			Path:      filepath.Join(dir, entry.Name()),
			Name:      entry.Name(),
			SizeBytes: info.Size(),
		})
	}

	return samples, nil
}
