package health

import "context"

// DBPinger checks blob store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// BusyReporter reports whether an indexing pass is in flight.
type BusyReporter interface {
	Busy() bool
}
