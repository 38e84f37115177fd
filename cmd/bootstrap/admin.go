package bootstrap

import (
	"slot-booking-manager/internal/pkg/adminauth"
	"slot-booking-manager/internal/pkg/config"

	"go.uber.org/fx"
)

var AdminModule = fx.Module("admin",
	fx.Provide(
		NewAdminGate,
	),
)

func NewAdminGate(cfg config.Config) (adminauth.Gate, error) {
	return adminauth.NewGate(cfg.Admin.Password)
}
