package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service LocalBoard hosts announce.
const ServiceType = "_localboard._tcp"

// Advertise announces a board on the local network under instance, or the
// machine's hostname when instance is empty. Shut the returned server down
// when the board closes.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("net: hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"LocalBoard"})
	if err != nil {
		return nil, fmt.Errorf("net: mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("net: mdns server: %w", err)
	}
	return server, nil
}

// Board is a host found by Browse.
type Board struct {
	Name string
	Addr string
}

// Link returns the share link for the board.
func (b Board) Link() string {
	return LinkScheme + b.Addr
}

// Browse looks for boards for up to timeout, or until ctx is done, calling
// found for each one with an IPv4 address.
func Browse(ctx context.Context, timeout time.Duration, found func(Board)) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Board{Name: e.Name, Addr: fmt.Sprintf("%s:%d", e.AddrV4, e.Port)})
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("net: mdns query: %w", err)
	}
	return ctx.Err()
}
