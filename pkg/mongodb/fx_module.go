package mongodb

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

var FXModule = fx.Module("mongodb",
	fx.Provide(
		NewMongo,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

func RegisterMongoLifecycle(lifecycle fx.Lifecycle, mongo *Mongo, logger Logger) {
	wg := &sync.WaitGroup{}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				mongo.MonitorConnection(context.Background())
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				mongo.RetryConnection(context.Background(), logger)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := mongo.Shutdown(ctx)
			wg.Wait()
			return err
		},
	})
}
