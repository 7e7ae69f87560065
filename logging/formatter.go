package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02 15:04:05"

var componentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7E9CD8"))

// TextFormatter writes one line per entry:
//
//	2024-03-09 14:05:06 [INFO] [daemon] New file name="a b.png" size=2048
type TextFormatter struct {
	Config FormatConfig
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format(timestampLayout))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", levelLabel(entry.Level))

	if component, ok := entry.Data[componentKey]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", componentStyle.Render(fmt.Sprint(component)))
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]", filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	for _, key := range sortedFieldKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%s", key, fieldValue(entry.Data[key]))
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelLabel(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

func sortedFieldKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		if key != componentKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// fieldValue quotes values that would otherwise break k=v parsing. Paths of
// watched files may hold spaces or bytes that are not valid UTF-8.
func fieldValue(v interface{}) string {
	s := fmt.Sprint(v)
	if s == "" {
		return `""`
	}
	if !utf8.ValidString(s) {
		return strconv.Quote(s)
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
