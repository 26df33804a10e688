package activity

import (
	"github.com/zhulik/pal"

	"inkwell/internal/core"
)

// ProvideDirect records events in the process that produces them.
func ProvideDirect() pal.ServiceDef {
	return pal.Provide[core.EventPublisher](&Recorder{})
}

func ProvideConsumer() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide(&Recorder{}),
		pal.Provide(&Consumer{}),
	)
}
