package net

import (
	"fmt"
	"log"
	"net"
)

// ReceiverURL builds the websocket URL a relay dials for host:port.
func ReceiverURL(host string, port int) string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(host, fmt.Sprint(port)), ImagePath)
}

// LocalIP returns the address other machines on the LAN can reach the receiver
// on. The route used for outbound traffic wins; without one the first
// private IPv4 interface address is used, then loopback.
func LocalIP() string {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String()
		}
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("[NET] Listing interfaces failed: %v", err)
		return "127.0.0.1"
	}
	if ip := pickIPv4(addrs); ip != nil {
		return ip.String()
	}
	log.Println("[NET] No LAN address found, receiver URL is loopback only")
	return "127.0.0.1"
}

// pickIPv4 prefers private addresses over other non-loopback ones.
func pickIPv4(addrs []net.Addr) net.IP {
	var fallback net.IP
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		if ipnet.IP.IsPrivate() {
			return ipnet.IP
		}
		if fallback == nil {
			fallback = ipnet.IP
		}
	}
	return fallback
}
