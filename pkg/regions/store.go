package regions

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
)

// Store is a source of region geometry that may live out of process.
//
// Fetch returns the rectangles for the refs it knows; unknown refs are
// simply absent from the result. Transient failures should be wrapped with
// [Retryable].
type Store interface {
	Fetch(ctx context.Context, refs []string) (map[string]geom.Rect, error)
}

// PrefetchOptions tunes [Prefetch].
type PrefetchOptions struct {
	Attempts int           // Total attempts for retryable failures (default 3)
	Delay    time.Duration // Initial backoff delay (default 1s)
	Logger   *log.Logger   // Optional; nil discards
}

func (o *PrefetchOptions) setDefaults() {
	if o.Attempts <= 0 {
		o.Attempts = 3
	}
	if o.Delay <= 0 {
		o.Delay = time.Second
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Prefetch resolves refs through store ahead of a layout and returns them as
// a Table. Layouts are synchronous and never touch the network, so any
// asynchronous region source has to be drained here first.
//
// Refs the store does not know are left out of the table; the layout engine
// then resolves them to the zero rectangle. Rectangles with a negative or
// non-finite extent are dropped the same way.
func Prefetch(ctx context.Context, store Store, refs []string, opts PrefetchOptions) (Table, error) {
	opts.setDefaults()
	refs = Table(nil).Missing(refs)
	if len(refs) == 0 || store == nil {
		return Table{}, nil
	}

	var got map[string]geom.Rect
	attempt := 0
	err := Retry(ctx, opts.Attempts, opts.Delay, func() error {
		attempt++
		var err error
		got, err = store.Fetch(ctx, refs)
		if err != nil && IsRetryable(err) {
			opts.Logger.Warn("region fetch failed", "attempt", attempt, "error", err)
		}
		return err
	})
	if err != nil {
		code := errors.ErrCodeNetwork
		if ctx.Err() != nil {
			code = errors.ErrCodeTimeout
		}
		return nil, errors.Wrap(code, err, "fetch %d regions", len(refs))
	}

	table := make(Table, len(got))
	for ref, r := range got {
		if !r.Valid() {
			opts.Logger.Warn("dropping invalid region", "ref", ref, "rect", r)
			continue
		}
		table[ref] = r
	}
	opts.Logger.Debug("regions prefetched", "requested", len(refs), "found", len(table))
	return table, nil
}

// Fetch implements Store so a Table can stand in for a remote store.
func (t Table) Fetch(_ context.Context, refs []string) (map[string]geom.Rect, error) {
	out := make(map[string]geom.Rect, len(refs))
	for _, ref := range refs {
		if r, ok := t[ref]; ok {
			out[ref] = r
		}
	}
	return out, nil
}
