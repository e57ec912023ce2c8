package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestNotifyCancelsOnSignal(t *testing.T) {
	exited := make(chan int, 1)
	exit = func(code int) { exited <- code }
	t.Cleanup(func() { exit = osExit })

	ctx, stop := notify(context.Background(), syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("context not cancelled after first signal")
	}

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}
	select {
	case code := <-exited:
		if code != ForceExitCode {
			t.Fatalf("exit code: want=%d got=%d", ForceExitCode, code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("second signal did not force exit")
	}
}

func TestStopCancelsAndIsIdempotent(t *testing.T) {
	ctx, stop := notify(context.Background(), syscall.SIGUSR2)
	stop()
	stop()
	if ctx.Err() == nil {
		t.Fatalf("stop should cancel the context")
	}
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := notify(parent, syscall.SIGUSR2)
	defer stop()
	cancel()
	if ctx.Err() == nil {
		t.Fatalf("parent cancel should propagate")
	}
}
