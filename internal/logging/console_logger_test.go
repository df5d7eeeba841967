package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(true, &buf)
	logger.Verbose("test message: %s", "value")

	expected := "[VERBOSE] test message: value\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(false, &buf)
	logger.Verbose("test message: %s", "value")

	if buf.String() != "" {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestConsoleLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(false, &buf)
	logger.Info("info message: %s", "value")

	expected := "info message: value\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(false, &buf)
	logger.Warn("no entries matched %q", "FO_1030009")

	expected := "[WARN] no entries matched \"FO_1030009\"\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(false, &buf)
	logger.Error("error message: %s", "value")

	expected := "[ERROR] error message: value\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestConsoleLogger_NoArgsFormatNotInterpreted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(false, &buf)
	// A message containing percent signs must come through untouched when
	// no args are supplied.
	logger.Info("100%% done is not the same as 100% done")

	if !strings.Contains(buf.String(), "100%% done") {
		t.Errorf("format string was interpreted without args: %q", buf.String())
	}
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(true, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("line %d", n)
			logger.Verbose("verbose %d", n)
			logger.Warn("warn %d", n)
			logger.Error("error %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Errorf("Expected 200 complete lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line == "" {
			t.Error("found empty (torn) log line")
		}
	}
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	logger := NewNullLogger()
	// Must not panic or write anywhere.
	logger.Verbose("v %d", 1)
	logger.Info("i %d", 2)
	logger.Warn("w %d", 3)
	logger.Error("e %d", 4)
}
