package relay

import "sync/atomic"

// Stats is a point-in-time snapshot of registry activity.
type Stats struct {
	Destinations  int    `json:"destinations"`
	ActiveWorkers int64  `json:"active_workers"`
	Pending       int    `json:"pending"`
	Submitted     uint64 `json:"submitted"`
	Delivered     uint64 `json:"delivered"`
	Retries       uint64 `json:"retries"`
	Dropped       uint64 `json:"dropped"`
	Abandoned     uint64 `json:"abandoned"`
}

type registryStats struct {
	activeWorkers atomic.Int64
	submitted     atomic.Uint64
	delivered     atomic.Uint64
	retries       atomic.Uint64
	dropped       atomic.Uint64
	abandoned     atomic.Uint64
}
