package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/shashiranjanraj/salesdesk/pkg/response"
)

// Probe reports whether one dependency is reachable.
type Probe func(ctx context.Context) error

type HealthController struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewHealthController checks every probe on each request, giving each at
// most timeout.
func NewHealthController(probes map[string]Probe, timeout time.Duration) *HealthController {
	return &HealthController{probes: probes, timeout: timeout}
}

// Check answers 200 when every dependency is up and 503 otherwise. The body
// lists the state of each one.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(c.probes))
	for name := range c.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
		err := c.probes[name](ctx)
		cancel()

		if err != nil {
			healthy = false
			status[name] = err.Error()
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		response.Unavailable(w, status)
		return
	}
	response.Success(w, status)
}
