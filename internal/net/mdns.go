package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service receivers advertise.
const ServiceType = "_sketchboard._tcp"

// Advertise announces a receiver listening on port.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "sketchboard-" + uuid.NewString()[:8]
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, []string{"SketchBoard receiver"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s as %s on port %d", ServiceType, host, port)
	return server, nil
}

// ErrNoReceiver is returned by Discover when nobody answered in time.
var ErrNoReceiver = errors.New("no receiver found")

// Discover browses for a receiver and returns the websocket URL of the first
// one that answers within timeout.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	drained := make(chan struct{})
	var url string

	go func() {
		defer close(drained)
		for e := range entries {
			if url == "" && e.AddrV4 != nil && e.Port != 0 {
				url = ReceiverURL(e.AddrV4.String(), e.Port)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-drained
	if err != nil {
		return "", fmt.Errorf("mdns query: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if url == "" {
		return "", ErrNoReceiver
	}
	log.Printf("[MDNS] Found receiver at %s", url)
	return url, nil
}
