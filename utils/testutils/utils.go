// Package testutils provides helpers shared by the tests of this module.
package testutils

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/benoitkugler/tablelayout/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatalf("expected\n%v\n got \n%v\n(-exp +got):\n%s", exp, got, diff)
	}
}

func AssertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

// CapturedLogs collects the messages sent to logger.WarningLogger
// while it is active. Release must be called to restore the logger;
// AssertNoLogs and CheckEqual do it.
type CapturedLogs struct {
	hook     *test.Hook
	oldHooks logrus.LevelHooks
	oldOut   io.Writer
}

// CaptureLogs starts capturing the warnings, which are not printed
// in the meantime. A typical use is
//
//	defer tu.CaptureLogs().AssertNoLogs(t)
func CaptureLogs() *CapturedLogs {
	l := logger.WarningLogger
	c := CapturedLogs{
		oldHooks: l.ReplaceHooks(make(logrus.LevelHooks)),
		oldOut:   l.Out,
	}
	l.SetOutput(io.Discard)
	c.hook = test.NewLocal(l)
	return &c
}

// Release stops capturing.
func (c *CapturedLogs) Release() {
	logger.WarningLogger.ReplaceHooks(c.oldHooks)
	logger.WarningLogger.SetOutput(c.oldOut)
}

// Logs returns the captured messages, in order.
func (c *CapturedLogs) Logs() []string {
	var out []string
	for _, entry := range c.hook.AllEntries() {
		out = append(out, entry.Message)
	}
	return out
}

// AssertNoLogs releases the capture and fails if any warning was emitted.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	c.Release()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no warnings, got %d: %q", len(logs), logs)
	}
}

// CheckEqual releases the capture and compares the messages with exp.
func (c *CapturedLogs) CheckEqual(exp []string, t *testing.T) {
	t.Helper()
	c.Release()
	AssertEqual(t, c.Logs(), exp)
}
