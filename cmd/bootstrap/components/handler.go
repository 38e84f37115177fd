package components

import (
	"slot-booking-manager/internal/handler"
	"slot-booking-manager/internal/handler/api"
	"slot-booking-manager/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewFrontendHandler,
		middleware.NewAdminMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
