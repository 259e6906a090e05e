package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		// expose the registry for packages that register their own
		// collectors (see mongodb.NewMetrics)
		func(m *Metrics) prometheus.Registerer { return m.Registry },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				_ = m.Server.ListenAndServe()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
