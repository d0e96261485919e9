// Package reports renders tabular exports and formats money for display.
package reports

import (
	"bytes"
	"encoding/csv"
	"regexp"

	"financas/internal/logger"
)

// Report is a titled table. Meta holds ordered key/value lines describing
// the filters that produced it.
type Report struct {
	Title   string
	Meta    []MetaLine
	Headers []string
	Rows    [][]string
}

// MetaLine is one "key: value" line of report metadata.
type MetaLine struct {
	Key   string
	Value string
}

// RenderCSV writes the header row followed by the data rows. Title and meta
// are not part of the CSV output.
func RenderCSV(report Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(report.Headers); err != nil {
		logger.Get().Errorw("Error writing CSV header", "error", err)
		return nil, err
	}
	for _, row := range report.Rows {
		if err := writer.Write(row); err != nil {
			logger.Get().Errorw("Error writing CSV row", "error", err)
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Get().Errorw("Error flushing CSV", "error", err)
		return nil, err
	}
	return b.Bytes(), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9_-] with an
// underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
