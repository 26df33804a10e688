package inkclient

import (
	"time"

	"resty.dev/v3"
)

type ClientConfig struct {
	TransportSettings *resty.TransportSettings

	ResponseMiddlewares []resty.ResponseMiddleware
	RequestMiddlewares  []resty.RequestMiddleware
}

var DefaultConfig = &ClientConfig{
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         1 * time.Second,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   1 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	},
}
