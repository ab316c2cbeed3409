package model

import (
	"net"
	"strings"
	"time"
)

// DeviceFingerprint captures the transport-level session signals available at
// scoring time. It is derived fresh from request metadata on every run and is
// only persisted as part of the run that produced it.
type DeviceFingerprint struct {
	IP                string    `json:"ip"`
	RawIP             string    `json:"raw_ip"`
	ForwardedForChain []string  `json:"forwarded_for_chain"`
	UserAgent         string    `json:"user_agent"`
	AcceptLanguage    string    `json:"accept_language"`
	CapturedAt        time.Time `json:"captured_at"`
}

// FingerprintFromRequestMeta derives a DeviceFingerprint from transport
// metadata. The client IP is the first X-Forwarded-For hop when the request
// came through a proxy, otherwise the remote address; IPv6-mapped IPv4
// addresses are reduced to their IPv4 form.
func FingerprintFromRequestMeta(remoteAddr, forwardedFor, userAgent, acceptLanguage string, now time.Time) DeviceFingerprint {
	var chain []string
	for _, hop := range strings.Split(forwardedFor, ",") {
		if hop = strings.TrimSpace(hop); hop != "" {
			chain = append(chain, hop)
		}
	}

	raw := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		raw = host
	}
	if len(chain) > 0 {
		raw = chain[0]
	}

	return DeviceFingerprint{
		IP:                normalizeIP(raw),
		RawIP:             raw,
		ForwardedForChain: chain,
		UserAgent:         userAgent,
		AcceptLanguage:    acceptLanguage,
		CapturedAt:        now,
	}
}

// normalizeIP strips the IPv6-mapped-IPv4 prefix ("::ffff:10.0.0.1" becomes
// "10.0.0.1") and leaves anything unparseable untouched.
func normalizeIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return strings.TrimSpace(raw)
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}

// SignalsPresent counts how many of the scoring model's fingerprint signals (client
// IP and user agent) were captured.
func (f DeviceFingerprint) SignalsPresent() int {
	n := 0
	if strings.TrimSpace(f.IP) != "" {
		n++
	}
	if strings.TrimSpace(f.UserAgent) != "" {
		n++
	}
	return n
}

// SignalsTotal is the number of signals the fingerprint factor inspects.
const SignalsTotal = 2
