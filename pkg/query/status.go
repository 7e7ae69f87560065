package query

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/file-preview/internal/daemon/store"
)

const (
	// MaxNameRunes is the longest name shown unabridged in the bar.
	MaxNameRunes = 18
	keepRunes    = 15
	ellipsis     = "…"

	ClassActive = "active"
	ClassEmpty  = "empty"
)

// Status is one Waybar custom-module line.
type Status struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	Alt     string `json:"alt"`
}

// Empty is the output when there is nothing to show.
func Empty() Status {
	return Status{Class: ClassEmpty, Alt: ClassEmpty}
}

// Active renders rec.
func Active(rec store.Record) Status {
	return Status{
		Text:    " " + Truncate(rec.Name),
		Tooltip: rec.Name + "\n" + HumanSize(rec.Size),
		Class:   ClassActive,
		Alt:     ClassActive,
	}
}

// Line returns the single-line JSON encoding.
func (s Status) Line() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// Truncate shortens names longer than MaxNameRunes to their first 15 runes
// followed by an ellipsis.
func Truncate(name string) string {
	r := []rune(name)
	if len(r) <= MaxNameRunes {
		return name
	}
	return string(r[:keepRunes]) + ellipsis
}

// HumanSize formats bytes with 1024-based units: "512 B", "2.0 KB", "1.5 MB".
// Anything of 1024 GB or more is reported in TB.
func HumanSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	size := float64(bytes) / 1024
	for _, unit := range []string{"KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
