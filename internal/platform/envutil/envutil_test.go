package envutil

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_S", "  http://api:8000 ")
	if got := String("ENVUTIL_S", "def"); got != "http://api:8000" {
		t.Fatalf("String: want=%q got=%q", "http://api:8000", got)
	}
	t.Setenv("ENVUTIL_S", "   ")
	if got := String("ENVUTIL_S", "def"); got != "def" {
		t.Fatalf("String blank: want=def got=%q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_I", "3")
	if got := Int("ENVUTIL_I", 1); got != 3 {
		t.Fatalf("Int: want=3 got=%d", got)
	}
	t.Setenv("ENVUTIL_I", "three")
	if got := Int("ENVUTIL_I", 1); got != 1 {
		t.Fatalf("Int invalid: want=1 got=%d", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("ENVUTIL_D", "90s")
	if got := Duration("ENVUTIL_D", time.Minute); got != 90*time.Second {
		t.Fatalf("Duration: want=90s got=%v", got)
	}
	t.Setenv("ENVUTIL_D", "soon")
	if got := Duration("ENVUTIL_D", time.Minute); got != time.Minute {
		t.Fatalf("Duration invalid: want=1m got=%v", got)
	}
	t.Setenv("ENVUTIL_D", "-1s")
	if got := Duration("ENVUTIL_D", time.Minute); got != -time.Second {
		t.Fatalf("Duration negative: want=-1s got=%v", got)
	}
}
