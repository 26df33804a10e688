package nats

import (
	"github.com/zhulik/pal"

	"inkwell/internal/core"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide(&NATS{}),
	)
}

// ProvidePublisher registers the stream as the destination of engagement events.
func ProvidePublisher() pal.ServiceDef {
	return pal.ProvideList(
		Provide(),
		pal.Provide[core.EventPublisher](&Publisher{}),
	)
}
