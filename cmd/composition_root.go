package cmd

import (
	"fueldrop/internal/adapters/out/postgres"
	"fueldrop/internal/adapters/out/postgres/capacityrepo"
	"fueldrop/internal/adapters/out/postgres/ledgerrepo"
	"fueldrop/internal/adapters/out/postgres/userrepo"
	"fueldrop/internal/adapters/out/push"
	"fueldrop/internal/adapters/out/stripegw"
	"fueldrop/internal/adapters/out/track"
	"fueldrop/internal/core/application/usecases/commands"
	"fueldrop/internal/core/application/usecases/queries"
	"fueldrop/internal/core/domain/services"
	"fueldrop/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	users     ports.UserRepository
	coupons   ports.CouponLedger
	referrals ports.ReferralLedger
	capacity  ports.CourierCapacity

	gateway  ports.PaymentGateway
	notifier ports.Notifier
	tracker  ports.EventTracker
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		users:      userrepo.NewGormUserRepository(gormDB),
		coupons:    ledgerrepo.NewGormCouponLedger(gormDB),
		referrals:  ledgerrepo.NewGormReferralLedger(gormDB),
		capacity:   capacityrepo.NewGormCourierCapacity(gormDB),
		gateway:    stripegw.NewGateway(config.StripeSecretKey),
		notifier:   push.NewNotifier(config.PushBaseURL, config.PushAPIKey),
		tracker:    track.NewTracker(config.TrackBaseURL, config.TrackAPIKey),
	}
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.users, c.capacity, c.notifier)
}

func (c *CompositionRoot) CreateProgressOrderCommandHandler() commands.ProgressOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProgressOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.gateway, c.capacity, c.users, c.referrals, c.tracker, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.users, services.NewCompensationPlanner())
}

func (c *CompositionRoot) CreateRunCompensationCommandHandler() commands.RunCompensationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRunCompensationCommandHandler(f, c.gateway, c.coupons, c.referrals, c.capacity, c.notifier, c.tracker)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnpaidBalanceQueryHandler() queries.GetUnpaidBalanceQueryHandler {
	return queries.NewGetUnpaidBalanceQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
