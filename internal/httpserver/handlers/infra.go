package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/apihub/internal/store/redis"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Loaded     *int   `json:"loaded,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	StoreURL   string                     `json:"store_url,omitempty"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingsCount := d.MemoryIndex.Count()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}
		_, metricsOK := d.MemoryIndex.Metrics()
		draftCount := d.Drafts.Count()

		components := map[string]componentStatus{
			"catalog": {
				OK:         d.MemoryIndex.Ready(),
				Loaded:     &listingsCount,
				LastReload: lastReloadStr,
			},
			"dashboard": {
				OK:     metricsOK,
				Impact: impactIf(!metricsOK, "dashboard-loading"),
			},
			"drafts": {
				OK:     true,
				Loaded: &draftCount,
			},
			"preferences": checkPreferences(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			StoreURL:   d.StoreURL,
			Components: components,
		})
	}
}

func impactIf(cond bool, impact string) string {
	if cond {
		return impact
	}
	return ""
}

func overallStatus(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}

func checkPreferences(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "memory",
			Impact: "preferences-lost-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "redis",
			Impact: "preferences-fall-back-to-default",
			Error:  err.Error(),
		}
	}

	status := componentStatus{OK: true, Mode: "redis"}
	if n, err := redisstore.NewStore(d.RedisClient).CountClients(ctx); err == nil {
		clients := int(n)
		status.Loaded = &clients
	}
	return status
}
