package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug): %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", Log.GetLevel())
	}
	if err := SetLevel(""); err != nil {
		t.Errorf("empty level should be ignored, got %v", err)
	}
	if err := SetLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestForTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	old := Log.Out
	Log.SetOutput(&buf)
	defer Log.SetOutput(old)

	For("raycast").Info("hello")
	if !strings.Contains(buf.String(), "component=raycast") {
		t.Errorf("expected component field in %q", buf.String())
	}
}
