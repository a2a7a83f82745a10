package usecase

import "context"

// Probe checks one backing service; a nil error means healthy.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	probes map[string]Probe
}

// NewHealthUsecase reports the state of each named probe.
func NewHealthUsecase(probes map[string]Probe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	result := map[string]string{"status": "ok"}
	healthy := true
	for name, probe := range u.probes {
		if err := probe(ctx); err != nil {
			result[name] = "down"
			healthy = false
			continue
		}
		result[name] = "ok"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
