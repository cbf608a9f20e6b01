package usecase

import (
	"context"
	"time"
)

// HealthUseCase reporta el estado del servicio y de la base de datos.
type HealthUseCase struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthUseCase construye el caso de uso. timeout limita el ping a la BD.
func NewHealthUseCase(db Pinger, timeout time.Duration) *HealthUseCase {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthUseCase{db: db, timeout: timeout}
}

// DatabaseReady hace ping a la BD con timeout.
func (uc *HealthUseCase) DatabaseReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.db.Ping(ctx)
}
