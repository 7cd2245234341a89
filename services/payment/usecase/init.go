package usecase

import (
	"github.com/danakita/danakita/internal/pkg/circuitbreaker"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/internal/pkg/retry"
	"github.com/danakita/danakita/internal/pkg/scheduler"
	"github.com/danakita/danakita/services/payment"
)

// PaymentUC implements the payment.PaymentUC interface
type PaymentUC struct {
	cfg      *models.Config
	repo     payment.TransactionRepo
	archive  payment.ArchiveRepo
	gw       payment.PaymentGW
	sched    scheduler.Scheduler
	retrier  *retry.Retrier
	breaker  *circuitbreaker.CircuitBreaker
	adapters map[string]gatewayAdapter
}

// NewPaymentUC creates a new payment use case. archive may be nil when no
// durable archive is configured; archival is then skipped.
func NewPaymentUC(
	cfg *models.Config,
	repo payment.TransactionRepo,
	archive payment.ArchiveRepo,
	gw payment.PaymentGW,
	sched scheduler.Scheduler,
	zapLogger *logger.ZapLogger,
) *PaymentUC {
	uc := &PaymentUC{
		cfg:     cfg,
		repo:    repo,
		archive: archive,
		gw:      gw,
		sched:   sched,
		retrier: retry.NewWithDefaults(zapLogger),
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig("transaction-archive"), zapLogger),
	}
	uc.adapters = buildGatewayAdapters(&cfg.Gateways)
	return uc
}

var _ payment.PaymentUC = (*PaymentUC)(nil)
