package monitor

import "time"

// Status is the last observed health of the backing services.
type Status struct {
	Storage       bool      `json:"storage"`
	StorageDriver string    `json:"storage_driver"`
	Cache         bool      `json:"cache"`
	CacheEnabled  bool      `json:"cache_enabled"`
	LastCheck     time.Time `json:"last_check"`
}
