package config

import (
	"os"
	"strings"

	"github.com/runoshun/taskpro/internal/domain"
)

// Ensure HostResolver implements domain.HostResolver.
var _ domain.HostResolver = (*HostResolver)(nil)

// HostResolver reports the host the client runs on.
// Order: explicit override, then TASKPRO_HOST, then the OS host name.
type HostResolver struct {
	getenv   func(string) string
	hostname func() (string, error)
	override string
}

// NewHostResolver creates a HostResolver. getenv may be nil to use os.Getenv.
func NewHostResolver(override string, getenv func(string) string) *HostResolver {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &HostResolver{
		getenv:   getenv,
		hostname: os.Hostname,
		override: override,
	}
}

// Hostname returns the detected host name, lower-cased.
func (r *HostResolver) Hostname() (string, error) {
	if h := strings.TrimSpace(r.override); h != "" {
		return strings.ToLower(h), nil
	}
	if h := strings.TrimSpace(r.getenv(EnvHost)); h != "" {
		return strings.ToLower(h), nil
	}
	h, err := r.hostname()
	if err != nil {
		return "", err
	}
	return strings.ToLower(h), nil
}
