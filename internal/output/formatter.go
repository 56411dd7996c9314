package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/jackpot/internal/domain"
)

// Formatter renders an evaluation. Implementations are pure: no side effects
// besides deterministic formatting.
type Formatter interface {
	Format(eval *domain.Evaluation) ([]byte, error)
	// Name returns a short identifier used on the command line.
	Name() string
	// Extension is the file extension used when the report is saved.
	Extension() string
}

// WriteFormatted runs a formatter and writes the output to a timestamped file
// in dir.
func WriteFormatted(f Formatter, eval *domain.Evaluation, dir string) (string, error) {
	data, err := f.Format(eval)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("jackpot_report_%s.%s", time.Now().Format("20060102_150405"), f.Extension())
	if dir != "" {
		filename = filepath.Join(dir, filename)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleFormatter{ShowSchedule: true},
	JSONFormatter{},
	ScheduleCSVFormatter{},
	MarkdownFormatter{},
	HTMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil when none matches
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

var aliasMap = map[string]string{
	"table":        "console",
	"text":         "console",
	"verbose":      "console-schedule",
	"schedule":     "console-schedule",
	"json-pretty":  "json",
	"schedule-csv": "csv",
	"md":           "markdown",
	"html-report":  "html",
}

// NormalizeFormatName lowers and resolves aliases
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}
