package shardqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
)

type noopJob struct{}

func (noopJob) Run(context.Context) error { return nil }

// blockShard occupies the single worker of a one-shard executor until the
// returned release func is called.
func blockShard(t *testing.T, ex *ShardExecutor, key string) (release func()) {
	t.Helper()
	blockCtx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	if err := ex.Submit(context.Background(), key, JobFunc(func(ctx context.Context) error {
		close(started)
		<-blockCtx.Done()
		return nil
	})); err != nil {
		t.Fatalf("submit blocking job: %v", err)
	}
	<-started
	return cancel
}

func TestShardExecutor_FIFOPerBot(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 4, QueueSize: 16})
	defer ex.Stop()

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	wg.Add(8)
	for i := 0; i < 8; i++ {
		v := i
		if err := ex.Submit(context.Background(), "387548561816027138", JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, v)
			mu.Unlock()
			wg.Done()
			return nil
		})); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for heartbeats")
	}
	for i, v := range order {
		if i != v {
			t.Fatalf("expected FIFO order, got %v", order)
		}
	}
}

func TestShardExecutor_QueueFull(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 1, EnqueueTimeout: 10 * time.Millisecond})
	defer ex.Stop()
	release := blockShard(t, ex, "bot")
	defer release()

	if err := ex.Submit(context.Background(), "bot", noopJob{}); err != nil {
		t.Fatalf("fill buffer: %v", err)
	}
	err := ex.Submit(context.Background(), "bot", noopJob{})
	var qf *QueueFullError
	if !errors.As(err, &qf) || !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected QueueFullError, got %v", err)
	}
	if qf.Capacity != 1 {
		t.Fatalf("capacity = %d, want 1", qf.Capacity)
	}
}

func TestShardExecutor_SubmitCtxCanceledWhileWaiting(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 1, EnqueueTimeout: time.Second})
	defer ex.Stop()
	release := blockShard(t, ex, "bot")
	defer release()

	_ = ex.Submit(context.Background(), "bot", noopJob{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ex.Submit(ctx, "bot", noopJob{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestShardExecutor_SubmitAfterStop(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 2, QueueSize: 2})
	ex.Stop()
	ex.Stop() // idempotent

	if err := ex.Submit(context.Background(), "bot", noopJob{}); !errors.Is(err, ErrExecutorClosed) {
		t.Fatalf("expected ErrExecutorClosed, got %v", err)
	}
}

func TestShardExecutor_StopDrainsQueuedJobs(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 8})
	release := blockShard(t, ex, "bot")

	var ran int32
	for i := 0; i < 3; i++ {
		if err := ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	release()
	ex.Stop()
	if got := atomic.LoadInt32(&ran); got != 3 {
		t.Fatalf("drained %d jobs, want 3", got)
	}
}

func TestShardExecutor_NoRetryByDefault(t *testing.T) {
	var (
		attempts int32
		handled  = make(chan error, 1)
	)
	ex := NewShardExecutor(Config{Shards: 1, ErrorHandler: func(err error) { handled <- err }})
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return kberrors.NewNetworkError("update stats", errors.New("connection reset"))
	}))

	select {
	case err := <-handled:
		if !errors.Is(err, kberrors.ErrTransport) {
			t.Fatalf("unexpected handler error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("error handler not called")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}

func TestShardExecutor_RetriesRecoverable(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 1, MaxAttempts: 3, BaseBackoff: 5 * time.Millisecond})
	defer ex.Stop()

	var attempts int32
	done := make(chan struct{})
	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return kberrors.NewAPIError("update stats", 503, 503, "maintenance", "", 0)
		}
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("job did not succeed, attempts=%d", atomic.LoadInt32(&attempts))
	}
}

func TestShardExecutor_IrrecoverableNotRetried(t *testing.T) {
	handled := make(chan error, 1)
	ex := NewShardExecutor(Config{Shards: 1, MaxAttempts: 5, BaseBackoff: time.Millisecond, ErrorHandler: func(err error) { handled <- err }})
	defer ex.Stop()

	var attempts int32
	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return kberrors.NewAPIError("update stats", 401, 401, "Unauthorized", "", 0)
	}))

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("error handler not called")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}

func TestShardExecutor_JobPanicRecovered(t *testing.T) {
	handled := make(chan error, 1)
	ex := NewShardExecutor(Config{Shards: 1, ErrorHandler: func(err error) { handled <- err }})
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error { panic("boom") }))
	select {
	case err := <-handled:
		var pe *PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PanicError, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("panic not reported")
	}

	ran := make(chan struct{})
	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
		close(ran)
		return nil
	}))
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panic")
	}
}

func TestShardExecutor_HandlerPanicRecovered(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 1, ErrorHandler: func(error) { panic("handler") }})
	defer ex.Stop()

	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error { return errors.New("x") }))
	ran := make(chan struct{})
	_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
		close(ran)
		return nil
	}))
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker did not continue after handler panic")
	}
}

func TestShardExecutor_SkipsCanceledJob(t *testing.T) {
	handled := make(chan error, 1)
	ex := NewShardExecutor(Config{Shards: 1, QueueSize: 2, ErrorHandler: func(err error) { handled <- err }})
	defer ex.Stop()
	release := blockShard(t, ex, "bot")

	var ran int32
	jobCtx, cancelJob := context.WithCancel(context.Background())
	if err := ex.Submit(jobCtx, "bot", JobFunc(func(context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	cancelJob()
	release()

	select {
	case err := <-handled:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler not called for canceled job")
	}
	if atomic.LoadInt32(&ran) != 0 {
		t.Fatal("canceled job should not run")
	}
}

func TestShardExecutor_Barrier(t *testing.T) {
	ex := NewShardExecutor(Config{Shards: 2})
	defer ex.Stop()

	var ran int32
	for i := 0; i < 5; i++ {
		_ = ex.Submit(context.Background(), "bot", JobFunc(func(context.Context) error {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&ran, 1)
			return nil
		}))
	}
	if err := ex.Barrier(context.Background(), "bot"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&ran); got != 5 {
		t.Fatalf("barrier returned after %d jobs, want 5", got)
	}
}

func TestJobFunc_Nil(t *testing.T) {
	var f JobFunc
	if err := f.Run(context.Background()); !errors.Is(err, ErrNilJob) {
		t.Fatalf("expected ErrNilJob, got %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("KOREANBOTS_ASYNC_SHARDS", "8")
	t.Setenv("KOREANBOTS_ASYNC_QUEUE_SIZE", "256")
	t.Setenv("KOREANBOTS_ASYNC_ENQUEUE_TIMEOUT", "250ms")
	t.Setenv("KOREANBOTS_ASYNC_MAX_ATTEMPTS", "5")
	t.Setenv("KOREANBOTS_ASYNC_BASE_BACKOFF", "200ms")
	t.Setenv("KOREANBOTS_ASYNC_MAX_INTERVAL", "5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Shards != 8 || cfg.QueueSize != 256 || cfg.MaxAttempts != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.EnqueueTimeout != 250*time.Millisecond || cfg.BaseBackoff != 200*time.Millisecond || cfg.MaxInterval != 5*time.Second {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.MaxAttempts != 1 || cfg.Shards != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
