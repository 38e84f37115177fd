package bootstrap

import (
	"slot-booking-manager/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	FxLogger,
	DBModule,
	AdminModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
