package topology

import (
	"fmt"
	"strings"
)

// Endpoint identifies one worker process by ip and port.
type Endpoint struct {
	IP   string
	Port string
}

// String renders the endpoint in its "ip:port" form.
func (e Endpoint) String() string {
	return e.IP + ":" + e.Port
}

// ParseEndpoint splits an "ip:port" string. Exactly one separator is
// accepted; bare IPv6 literals are therefore rejected. Whitespace is kept
// as-is: peers compare ips byte for byte, so " 10.0.0.1" and "10.0.0.1"
// are different hosts.
func ParseEndpoint(raw string) (Endpoint, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return Endpoint{}, configErrorf("endpoint %q must be ip:port", raw)
	}
	ip, port := parts[0], parts[1]
	if ip == "" || port == "" {
		return Endpoint{}, configErrorf("endpoint %q must be ip:port", raw)
	}
	return Endpoint{IP: ip, Port: port}, nil
}

// ParseEndpoints parses each host string, keeping order.
func ParseEndpoints(hosts []string) ([]Endpoint, error) {
	if len(hosts) == 0 {
		return nil, configErrorf("endpoint list is empty")
	}
	endpoints := make([]Endpoint, 0, len(hosts))
	for idx, host := range hosts {
		ep, err := ParseEndpoint(host)
		if err != nil {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("hosts[%d]", idx), Err: err}
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// ParseEndpointList parses the comma-joined environment representation.
func ParseEndpointList(raw string) ([]Endpoint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, configErrorf("endpoint list is empty")
	}
	return ParseEndpoints(strings.Split(raw, ","))
}

// JoinEndpoints is the inverse of ParseEndpointList.
func JoinEndpoints(endpoints []Endpoint) string {
	parts := make([]string, len(endpoints))
	for i, ep := range endpoints {
		parts[i] = ep.String()
	}
	return strings.Join(parts, ",")
}
