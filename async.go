package koreanbots

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/koreanbots/koreanbots-go/internal/shardqueue"
)

// Async is the non-blocking view of a Client. Each call enqueues the request
// and returns a Future at once. Requests for the same bot (or user) run in
// submission order; different keys run in parallel.
//
// Async shares the Client's transport, token and base URL, so its requests
// and results are identical to the blocking methods'.
type Async struct {
	client *Client
	exec   executor
}

// Future is the pending result of an async request.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error

	stop func() bool // detaches the context watcher
}

func newFuture[T any](ctx context.Context) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.stop = context.AfterFunc(ctx, func() {
		var zero T
		f.complete(zero, ctx.Err())
	})
	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// finish settles f from the worker and releases the context watcher.
func (f *Future[T]) finish(v T, err error) {
	f.complete(v, err)
	f.stop()
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the request finishes or ctx is done. Abandoning a
// Future does not cancel the request; cancel the context given at
// submission for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// futureError carries a failed attempt to the executor's error handler,
// which settles the Future when no retry follows.
type futureError struct {
	err  error
	fail func()
}

func (e *futureError) Error() string { return e.err.Error() }
func (e *futureError) Unwrap() error { return e.err }

// submit enqueues fn under key and returns its Future.
func submit[T any](a *Async, ctx context.Context, key string, fn func(context.Context) (T, error)) (*Future[T], error) {
	f := newFuture[T](ctx)
	job := shardqueue.JobFunc(func(jobCtx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.finish(zero, &shardqueue.PanicError{Value: r})
				err = nil
			}
		}()
		v, runErr := fn(jobCtx)
		if runErr == nil {
			f.finish(v, nil)
			return nil
		}
		return &futureError{err: runErr, fail: func() {
			var zero T
			f.finish(zero, runErr)
		}}
	})

	if err := a.exec.Submit(ctx, key, job); err != nil {
		f.stop()
		if errors.Is(err, shardqueue.ErrQueueFull) {
			return nil, fmt.Errorf("%w: %v", ErrBackPressure, err)
		}
		return nil, err
	}
	return f, nil
}

// GetBot enqueues Client.GetBot.
func (a *Async) GetBot(ctx context.Context, botID string) (*Future[*Response[Bot]], error) {
	return submit(a, ctx, botID, func(ctx context.Context) (*Response[Bot], error) {
		return a.client.GetBot(ctx, botID)
	})
}

// SearchBots enqueues Client.SearchBots.
func (a *Async) SearchBots(ctx context.Context, query string, page int) (*Future[*Response[Data[Bot]]], error) {
	return submit(a, ctx, "search:"+query, func(ctx context.Context) (*Response[Data[Bot]], error) {
		return a.client.SearchBots(ctx, query, page)
	})
}

// ListBotsByVotes enqueues Client.ListBotsByVotes.
func (a *Async) ListBotsByVotes(ctx context.Context, page int) (*Future[*Response[Data[Bot]]], error) {
	return submit(a, ctx, "list:votes", func(ctx context.Context) (*Response[Data[Bot]], error) {
		return a.client.ListBotsByVotes(ctx, page)
	})
}

// ListNewBots enqueues Client.ListNewBots.
func (a *Async) ListNewBots(ctx context.Context) (*Future[*Response[Data[Bot]]], error) {
	return submit(a, ctx, "list:new", func(ctx context.Context) (*Response[Data[Bot]], error) {
		return a.client.ListNewBots(ctx)
	})
}

// CheckVote enqueues Client.CheckVote.
func (a *Async) CheckVote(ctx context.Context, botID, userID string) (*Future[*Response[VoteCheck]], error) {
	if err := a.client.requireToken("check vote"); err != nil {
		return nil, err
	}
	return submit(a, ctx, botID, func(ctx context.Context) (*Response[VoteCheck], error) {
		return a.client.CheckVote(ctx, botID, userID)
	})
}

// UpdateStats enqueues Client.UpdateStats. Heartbeats for one bot are
// delivered in submission order.
func (a *Async) UpdateStats(ctx context.Context, botID string, stats StatsUpdate) (*Future[*ResponseUpdate], error) {
	if err := a.client.requireToken("update stats"); err != nil {
		return nil, err
	}
	return submit(a, ctx, botID, func(ctx context.Context) (*ResponseUpdate, error) {
		return a.client.UpdateStats(ctx, botID, stats)
	})
}

// UpdateServers enqueues a server-count heartbeat.
func (a *Async) UpdateServers(ctx context.Context, botID string, servers int) (*Future[*ResponseUpdate], error) {
	return a.UpdateStats(ctx, botID, ServersUpdate(servers))
}

// UpdateShards enqueues a shard-count heartbeat.
func (a *Async) UpdateShards(ctx context.Context, botID string, shards int) (*Future[*ResponseUpdate], error) {
	return a.UpdateStats(ctx, botID, ShardsUpdate(shards))
}

// GetUser enqueues Client.GetUser.
func (a *Async) GetUser(ctx context.Context, userID string) (*Future[*Response[UserInfo]], error) {
	return submit(a, ctx, userID, func(ctx context.Context) (*Response[UserInfo], error) {
		return a.client.GetUser(ctx, userID)
	})
}

// ResolveWidgetURL enqueues Client.ResolveWidgetURL.
func (a *Async) ResolveWidgetURL(ctx context.Context, botID string, kind WidgetType, q *WidgetQuery) (*Future[string], error) {
	return submit(a, ctx, botID, func(ctx context.Context) (string, error) {
		return a.client.ResolveWidgetURL(ctx, botID, kind, q)
	})
}

// AwaitBot blocks until every request submitted so far for botID has
// finished. Use it before reading state that a pending heartbeat changes.
func (a *Async) AwaitBot(ctx context.Context, botID string) error {
	return a.exec.Barrier(ctx, botID)
}
