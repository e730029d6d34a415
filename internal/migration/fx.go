package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/config"
	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
	invoicedomain "github.com/bharatstack/gstbill/internal/invoice/domain"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	sequencedomain "github.com/bharatstack/gstbill/internal/sequence/domain"
	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The versioned SQL migrations are written for postgres. Other
		// dialects, used for local development, get the schema from gorm.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&merchantdomain.Profile{},
				&warehousedomain.Warehouse{},
				&hsndomain.Mapping{},
				&sequencedomain.SequenceState{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceLineItem{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
