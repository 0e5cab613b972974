package app

import (
	"time"

	"pypack/internal/adapters"
	"pypack/internal/policies"
	"pypack/internal/ports"
)

type Service struct {
	Index       ports.PackageIndexPort
	Conda       ports.CondaChannelPort
	Classifiers *policies.ClassifierPolicy
	Clock       func() time.Time
}

func NewService() Service {
	return Service{
		Index:       adapters.NewPyPIAdapter("", 0),
		Conda:       adapters.NewCondaAdapter("", "", 0),
		Classifiers: policies.NewClassifierPolicy(),
		Clock:       time.Now,
	}
}
