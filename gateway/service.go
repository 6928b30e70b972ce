package gateway

import (
	"fmt"

	"github.com/oasislabs/sui-gateway/stats"
)

// Service is the interface implemented by the components whose
// stats are reported on the health endpoint
type Service interface {
	// Name returns a human readable identifier for a service.
	// Each service should have a unique name
	Name() string

	// Stats returns the current health stats of the
	// service
	Stats() stats.Metrics
}

// Services is the registry of the services of the gateway. Services
// are added while the gateway is built, before any router serves
// requests, and read concurrently afterwards
type Services map[string]Service

// NewServices returns a new instance of services
func NewServices() Services {
	return Services(make(map[string]Service))
}

// Add adds the service by name to the collection of
// services
func (s Services) Add(service Service) {
	if _, ok := s[service.Name()]; ok {
		panic(fmt.Sprintf("Services already contains service %s", service.Name()))
	}

	s[service.Name()] = service
}

// Contains returns true if there is a service with
// that name
func (s Services) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Stats returns the stats of all the services
func (s Services) Stats() stats.Group {
	group := stats.NewGroup()

	for name, service := range s {
		group.Add(name, service.Stats())
	}

	return group
}
