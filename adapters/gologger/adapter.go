package gologger

import (
	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// ResolveProvider always returns a provider, wrapping a bare logger or falling
// back to nop, so one source can feed several named components.
func ResolveProvider(name string, provider glog.LoggerProvider, logger glog.Logger) glog.LoggerProvider {
	resolved, resolvedLogger := Resolve(name, provider, logger)
	if resolved != nil {
		return resolved
	}
	return glog.ProviderFromLogger(glog.Ensure(resolvedLogger))
}
