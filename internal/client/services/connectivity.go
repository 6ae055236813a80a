package services

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/luggify/internal/netx"
)

// Connectivity tells the engine whether the backend is worth trying.
type Connectivity interface {
	IsOnline(ctx context.Context) bool
}

// StaticConnectivity always answers with its own value.
type StaticConnectivity bool

func (s StaticConnectivity) IsOnline(context.Context) bool { return bool(s) }

// ProbeConnectivity checks the backend root with a short GET.
type ProbeConnectivity struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

// NewProbeConnectivity probes baseURL; a zero timeout means two seconds.
func NewProbeConnectivity(baseURL string, timeout time.Duration) *ProbeConnectivity {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ProbeConnectivity{url: baseURL, http: &http.Client{}, timeout: timeout}
}

func (p *ProbeConnectivity) IsOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return netx.Probe(ctx, p.http, p.url) == nil
}
