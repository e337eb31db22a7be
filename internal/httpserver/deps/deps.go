package deps

import (
	"time"

	"github.com/MrSnakeDoc/navs/internal/finder"
	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/store"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	AllowedHosts    []string           // Host headers allowed to access the server
	AllowedCIDRS    []string           // IPs allowed to access admin endpoints
	TrustProxy      bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SourceFile      string             // Path to the definitions file, empty when the store is authoritative
	StoreBackend    string             // "redis" | "sql" | "memory"
	Store           store.Store        // Persistence store (nil for the memory backend)
	MemoryIndex     *index.MemoryIndex // In-memory snapshot served to queries
	Finder          *finder.Finder     // Query engine over MemoryIndex
	ReloadTrigger   chan struct{}      // Channel to trigger a manual reload
	RateLimitBurst  int                // per-IP burst on the API
	RateLimitPerMin int                // per-IP refill per minute, 0 disables
}
