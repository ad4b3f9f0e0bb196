package observability

import "context"

// Fanout returns an observer that forwards every event to each non-nil
// observer in order. Nested fan-outs are flattened, a single observer is
// returned as is and none at all yields NoOpObserver.
func Fanout(observers ...Observer) Observer {
	var flat fanout
	for _, obs := range observers {
		switch obs := obs.(type) {
		case nil:
		case fanout:
			flat = append(flat, obs...)
		default:
			flat = append(flat, obs)
		}
	}
	switch len(flat) {
	case 0:
		return NoOpObserver{}
	case 1:
		return flat[0]
	}
	return flat
}

type fanout []Observer

func (f fanout) OnEvent(ctx context.Context, event Event) {
	for _, obs := range f {
		obs.OnEvent(ctx, event)
	}
}
