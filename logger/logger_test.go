package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoggerField(t *testing.T) {
	l := newLogger("tablelayout.test", logrus.WarnLevel)
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithField("span", 0).Warn("invalid span")
	l.Info("hidden")

	line := buf.String()
	for _, exp := range []string{`msg="invalid span"`, "logger=tablelayout.test", "span=0", "level=warning"} {
		if !strings.Contains(line, exp) {
			t.Fatalf("expected %q in %q", exp, line)
		}
	}
	if strings.Contains(line, "hidden") {
		t.Fatalf("unexpected Info entry in %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected one line, got %q", line)
	}
}
