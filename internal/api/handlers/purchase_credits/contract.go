package purchase_credits

import (
	"context"

	purchaseCredits "github.com/m04kA/GMS-BookingService/internal/usecase/purchase_credits"
)

type PurchaseCreditsUseCase interface {
	Execute(ctx context.Context, memberID int64, req *purchaseCredits.PurchaseCreditsRequest) (*purchaseCredits.PurchaseCreditsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
