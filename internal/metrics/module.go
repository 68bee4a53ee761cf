package metrics

import "go.uber.org/fx"

// Module provides the service metrics recorder.
var Module = fx.Provide(New)
