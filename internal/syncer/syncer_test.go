package syncer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestGo_CapturesFailure(t *testing.T) {
	s := New(quietLogger())

	wantErr := errors.New("boom")
	s.Go("test.fail", func(ctx context.Context) error { return wantErr })
	s.Wait()

	select {
	case result := <-s.Results():
		if result.Name != "test.fail" {
			t.Errorf("result name = %q, want test.fail", result.Name)
		}
		if !errors.Is(result.Err, wantErr) {
			t.Errorf("result err = %v, want %v", result.Err, wantErr)
		}
	default:
		t.Fatal("no result captured")
	}
}

func TestGo_CapturesSuccess(t *testing.T) {
	s := New(quietLogger())

	s.Go("test.ok", func(ctx context.Context) error { return nil })
	s.Wait()

	select {
	case result := <-s.Results():
		if result.Err != nil {
			t.Errorf("result err = %v, want nil", result.Err)
		}
	default:
		t.Fatal("no result captured")
	}
}

func TestGo_NeverBlocksCaller(t *testing.T) {
	s := New(quietLogger())

	release := make(chan struct{})
	start := time.Now()
	s.Go("test.slow", func(ctx context.Context) error {
		<-release
		return nil
	})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Go blocked for %s", elapsed)
	}

	close(release)
	s.Wait()
}

func TestGo_TaskContextHasDeadline(t *testing.T) {
	s := New(quietLogger())

	var hasDeadline bool
	s.Go("test.deadline", func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	s.Wait()

	if !hasDeadline {
		t.Error("task context has no deadline")
	}
}

func TestRecord_DropsOldestWhenFull(t *testing.T) {
	s := New(quietLogger())

	// Overflow the buffer; Go must still never block.
	for i := 0; i < 200; i++ {
		s.Go("test.flood", func(ctx context.Context) error { return nil })
	}
	s.Wait()

	drained := 0
	for {
		select {
		case <-s.Results():
			drained++
			continue
		default:
		}
		break
	}

	if drained == 0 || drained > 128 {
		t.Errorf("drained %d results, want 1..128", drained)
	}
}
