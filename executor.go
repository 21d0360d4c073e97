package koreanbots

import (
	"context"

	"github.com/koreanbots/koreanbots-go/internal/shardqueue"
)

// executor abstracts the job runner behind Async.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Barrier(context.Context, string) error
	Stop()
}

var _ executor = (*shardqueue.ShardExecutor)(nil)
