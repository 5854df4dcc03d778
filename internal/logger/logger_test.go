package logger

import (
	"fmt"
	"testing"
)

func TestLogger(t *testing.T) {
	// skip in ci checks
	if true {
		t.Skip()
	}

	Info("hello")

	Info("fetched %s", "RELIANCE")

	x := map[string]string{
		"symbol": "AXISBANK",
	}
	Info("cycle %v", x)

	Error(fmt.Errorf("ah man"))

	t.Fail()
}
