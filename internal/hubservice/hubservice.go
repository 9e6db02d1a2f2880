// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/cache"
	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/repository"
)

// HubService contains the repositories and service-wide dependencies of
// the query path. It is stateless per request and safe for concurrent use.
type HubService struct {
	Samples  repository.SampleRepository
	Cache    cache.Cache
	ClientID string

	queryTimeout time.Duration
	now          func() time.Time
}

// New creates a new HubService instance
func New(samples repository.SampleRepository, c cache.Cache, clientID string, queryTimeout time.Duration) *HubService {
	return &HubService{
		Samples:      samples,
		Cache:        c,
		ClientID:     clientID,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Samples == nil {
		return ErrMissingDependency("samples")
	}
	if s.Cache == nil {
		return ErrMissingDependency("cache")
	}
	if s.ClientID == "" {
		return ErrMissingDependency("clientID")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
