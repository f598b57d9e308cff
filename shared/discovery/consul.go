// Package discovery registers HTTP services with Consul.
package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/google/uuid"
	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes one service instance.
type Registration struct {
	ConsulAddr  string
	ServiceName string
	Host        string
	Port        int
	HealthPath  string
}

// Registrar registers and deregisters a service instance.
type Registrar struct {
	client    *consul.Client
	logger    *zerolog.Logger
	serviceID string
}

func NewRegistrar(addr string, logger *zerolog.Logger) (*Registrar, error) {
	cfg := consul.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}

	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &Registrar{client: client, logger: logger}, nil
}

// Register adds the instance with an HTTP health check against HealthPath.
func (r *Registrar) Register(reg Registration) error {
	r.serviceID = fmt.Sprintf("%s-%s", reg.ServiceName, uuid.NewString())

	address := net.JoinHostPort(reg.Host, strconv.Itoa(reg.Port))
	service := &consul.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    reg.ServiceName,
		Address: reg.Host,
		Port:    reg.Port,
		Tags:    []string{"http"},
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s%s", address, reg.HealthPath),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := r.client.Agent().ServiceRegister(service); err != nil {
		return fmt.Errorf("register service %s: %w", reg.ServiceName, err)
	}

	r.logger.Info().Str("service_id", r.serviceID).Str("address", address).Msg("registered with consul")

	return nil
}

// Deregister removes the instance added by Register.
func (r *Registrar) Deregister() error {
	if r.serviceID == "" {
		return nil
	}

	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		return fmt.Errorf("deregister service %s: %w", r.serviceID, err)
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("deregistered from consul")

	return nil
}
