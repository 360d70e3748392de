package treestore

import (
	"context"
	"errors"
	"time"
)

// Observer receives the duration and outcome of every store call.
type Observer interface {
	ObserveStoreOp(op string, duration time.Duration, err error)
}

// Observed wraps a Store and reports each call to an Observer. ErrNotFound
// is reported as success.
type Observed struct {
	next     Store
	observer Observer
}

// WithObserver decorates s. A nil observer returns s unchanged.
func WithObserver(s Store, o Observer) Store {
	if o == nil {
		return s
	}
	return &Observed{next: s, observer: o}
}

func (o *Observed) done(op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	o.observer.ObserveStoreOp(op, time.Since(start), err)
}

func (o *Observed) Get(ctx context.Context, path string, dest interface{}) (err error) {
	defer func(start time.Time) { o.done("get", start, err) }(time.Now())
	return o.next.Get(ctx, path, dest)
}

func (o *Observed) Exists(ctx context.Context, path string) (ok bool, err error) {
	defer func(start time.Time) { o.done("exists", start, err) }(time.Now())
	return o.next.Exists(ctx, path)
}

func (o *Observed) Set(ctx context.Context, path string, value interface{}) (err error) {
	defer func(start time.Time) { o.done("set", start, err) }(time.Now())
	return o.next.Set(ctx, path, value)
}

func (o *Observed) Update(ctx context.Context, path string, fields map[string]interface{}) (err error) {
	defer func(start time.Time) { o.done("update", start, err) }(time.Now())
	return o.next.Update(ctx, path, fields)
}

func (o *Observed) Remove(ctx context.Context, path string) (err error) {
	defer func(start time.Time) { o.done("remove", start, err) }(time.Now())
	return o.next.Remove(ctx, path)
}

func (o *Observed) Increment(ctx context.Context, path string, delta int64) (n int64, err error) {
	defer func(start time.Time) { o.done("increment", start, err) }(time.Now())
	return o.next.Increment(ctx, path, delta)
}

func (o *Observed) SetIfAbsent(ctx context.Context, path string, value interface{}) (ok bool, err error) {
	defer func(start time.Time) { o.done("set_if_absent", start, err) }(time.Now())
	return o.next.SetIfAbsent(ctx, path, value)
}

func (o *Observed) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { o.done("ping", start, err) }(time.Now())
	return o.next.Ping(ctx)
}
