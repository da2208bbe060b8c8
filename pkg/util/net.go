package util

import (
	"net"
	"strings"
)

// isPrivateIPv4 reports whether ip is an RFC1918 private IPv4 address.
func isPrivateIPv4(ip net.IP) bool {
	ip4 := ip.To4()
	if ip4 == nil {
		return false
	}
	switch {
	case ip4[0] == 10:
		return true
	case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31:
		return true
	case ip4[0] == 192 && ip4[1] == 168:
		return true
	}
	return false
}

// LocalIPv4s returns the machine's IPv4 addresses on interfaces that are up
// and not loopback. With privateOnly set, only RFC1918 addresses are kept.
func LocalIPv4s(privateOnly bool) []string {
	var ips []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return ips
	}
	for _, iface := range ifaces {
		if (iface.Flags&net.FlagUp) == 0 || (iface.Flags&net.FlagLoopback) != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			var ip net.IP
			switch v := a.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil {
				continue
			}
			if privateOnly && !isPrivateIPv4(ip) {
				continue
			}
			ips = append(ips, ip.To4().String())
		}
	}
	return ips
}

// ComposeLANURL builds a reachable http URL for addr. Wildcard binds
// (0.0.0.0, ::, empty host) are replaced with the first private IPv4 so the
// printed URL works from other machines on the LAN.
func ComposeLANURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	h := strings.TrimSpace(host)
	if h == "" || h == "0.0.0.0" || h == "::" || h == "[::]" {
		if ips := LocalIPv4s(true); len(ips) > 0 {
			return "http://" + ips[0] + ":" + port
		}
	}
	if strings.Contains(h, ":") && !strings.HasPrefix(h, "[") {
		return "http://[" + h + "]:" + port
	}
	return "http://" + h + ":" + port
}
