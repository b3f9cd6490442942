package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// IPExtractor extracts the client IP address from an HTTP request.
// Implementations choose between secure RemoteAddr extraction (default)
// and header-based extraction behind a trusted reverse proxy (opt-in).
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor extracts the client IP from the TCP connection address.
// The connection IP cannot be spoofed by the client, so this is the safe
// choice when the server is directly reachable.
type RemoteAddrExtractor struct{}

func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers
// are believed. Header-based extraction is only valid when the direct
// peer is one of these proxies.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr ("IP:port") belongs to a trusted proxy.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig loads proxy trust settings from the environment.
//
//   - RATE_LIMIT_TRUST_PROXY: "true" to enable header-based extraction
//   - RATE_LIMIT_TRUSTED_PROXIES: comma-separated IPs or CIDR ranges
//
// Fail-closed: enabling trust without naming proxies, or naming an
// invalid CIDR, is an error that should prevent startup.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	cfg := &TrustedProxyConfig{
		Enabled: os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true",
	}
	if !cfg.Enabled {
		return cfg, nil
	}

	proxiesStr := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if proxiesStr == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, entry := range strings.Split(proxiesStr, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := parseCIDROrIP(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}
	if len(cfg.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES contains no valid entries")
	}
	return cfg, nil
}

// HeaderExtractor extracts the client IP from X-Forwarded-For or X-Real-IP,
// falling back to RemoteAddr. Headers are only consulted when the request
// arrives from a trusted proxy.
type HeaderExtractor struct {
	Proxies *TrustedProxyConfig
}

func (e *HeaderExtractor) ExtractIP(r *http.Request) (string, error) {
	if e.Proxies == nil || !e.Proxies.Enabled || !e.Proxies.IsTrusted(r.RemoteAddr) {
		return extractIPFromAddr(r.RemoteAddr)
	}

	// X-Forwarded-For holds "client, proxy1, proxy2"; the first entry is
	// the original client as reported by the nearest trusted proxy.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if addr, err := netip.ParseAddr(first); err == nil {
			return addr.String(), nil
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		if addr, err := netip.ParseAddr(realIP); err == nil {
			return addr.String(), nil
		}
	}

	return extractIPFromAddr(r.RemoteAddr)
}

// NewIPExtractor builds the extractor appropriate for the given proxy config.
func NewIPExtractor(proxies *TrustedProxyConfig) IPExtractor {
	if proxies != nil && proxies.Enabled {
		return &HeaderExtractor{Proxies: proxies}
	}
	return &RemoteAddrExtractor{}
}

// extractIPFromAddr strips the port from an "IP:port" address.
// Handles IPv4, bracketed IPv6 and bare addresses without a port.
func extractIPFromAddr(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("empty remote address")
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, nil
	}
	if parsed, err := netip.ParseAddr(addr); err == nil {
		return parsed.String(), nil
	}
	return "", fmt.Errorf("cannot parse address %q", addr)
}

func parseCIDROrIP(entry string) (netip.Prefix, error) {
	if strings.Contains(entry, "/") {
		return netip.ParsePrefix(entry)
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
