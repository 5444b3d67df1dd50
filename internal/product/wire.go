package product

import (
	"fmt"

	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Service    Service
}

func NewModule(logger *zap.Logger) (*Module, error) {
	repo, err := NewDefaultRepository()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	svc := NewService(repo)
	uc := NewUseCase(svc)

	return &Module{
		Controller: NewController(uc, logger),
		Service:    svc,
	}, nil
}
