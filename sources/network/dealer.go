package network

import (
	"toolscout/sources/configuration"
	"toolscout/sources/tracing"

	"golang.org/x/net/proxy"
)

func NewDialer(config *configuration.Config, log *tracing.Logger) proxy.Dialer {
	if !config.Proxy.Enabled {
		return proxy.Direct
	}

	var auth *proxy.Auth
	if config.Proxy.User != "" {
		auth = &proxy.Auth{User: config.Proxy.User, Password: config.Proxy.Pass}
	}

	dialer, err := proxy.SOCKS5("tcp", config.Proxy.Address, auth, proxy.Direct)
	if err != nil {
		log.F("Failed to create proxy dialer", tracing.InnerError, err)
	}

	log.I("Egress routed through proxy", tracing.ProxyUrl, config.Proxy.Address)
	return dialer
}
