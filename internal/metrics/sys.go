package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

var startedAt = time.Now()

// SysHealth is the process snapshot served by the health endpoint.
type SysHealth struct {
	Uptime       string `json:"uptime"`
	AllocMB      uint64 `json:"alloc_mb"`
	SysMB        uint64 `json:"sys_mb"`
	NumGC        uint32 `json:"num_gc"`
	Goroutines   int    `json:"goroutines"`
	DatabaseSize string `json:"database_size,omitempty"`
}

// GetSysHealth reports memory, goroutine and uptime figures plus the on-disk
// size of the SQLite database at dbPath. dbPath is empty for in-memory storage.
func GetSysHealth(dbPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	health := SysHealth{
		Uptime:     time.Since(startedAt).Round(time.Second).String(),
		AllocMB:    m.Alloc >> 20,
		SysMB:      m.Sys >> 20,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
	if dbPath != "" {
		health.DatabaseSize = formatBytes(databaseSize(dbPath))
	}
	return health
}

// databaseSize sums the database file and its WAL and shared-memory files.
func databaseSize(dbPath string) int64 {
	var total int64
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}
	return total
}

func formatBytes(n int64) string {
	const units = "KMGTPE"
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n) / 1024
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %cB", value, units[i])
}
