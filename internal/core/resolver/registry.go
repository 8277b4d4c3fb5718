package resolver

import (
	"strings"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

// Connector is the family of entity laid between two endpoints.
type Connector string

const (
	ConnectorPipe  Connector = "pipe"
	ConnectorBelt  Connector = "belt"
	ConnectorPower Connector = "power"
)

var prototypeConnectors = map[string]Connector{
	"pipe":                   ConnectorPipe,
	"pipe-to-ground":         ConnectorPipe,
	"transport-belt":         ConnectorBelt,
	"fast-transport-belt":    ConnectorBelt,
	"express-transport-belt": ConnectorBelt,
	"underground-belt":       ConnectorBelt,
	"small-electric-pole":    ConnectorPower,
	"medium-electric-pole":   ConnectorPower,
	"big-electric-pole":      ConnectorPower,
	"substation":             ConnectorPower,
}

// ConnectorFor maps a connector family name or a placeable prototype name to its family.
func ConnectorFor(name string) (Connector, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch Connector(name) {
	case ConnectorPipe, ConnectorBelt, ConnectorPower:
		return Connector(name), nil
	}
	if c, ok := prototypeConnectors[name]; ok {
		return c, nil
	}
	return "", NewError(ErrorCodeUnknownConnector, "%q is not a pipe, belt or electric pole", name)
}

// Registry holds one resolver per connector family over a shared world view.
type Registry struct {
	resolvers map[Connector]Resolver
}

func NewRegistry(q world.Querier, logger log.Log, opts Options) *Registry {
	return &Registry{
		resolvers: map[Connector]Resolver{
			ConnectorPipe:  NewFluidResolver(q, logger, opts),
			ConnectorBelt:  NewTransportResolver(q, logger, opts),
			ConnectorPower: NewPowerResolver(q, logger, opts),
		},
	}
}

func (r *Registry) For(c Connector) (Resolver, error) {
	res, ok := r.resolvers[c]
	if !ok {
		return nil, NewError(ErrorCodeUnknownConnector, "no resolver for connector %q", c)
	}
	return res, nil
}

// Resolve looks up the resolver for connector (family or prototype name) and runs it.
func (r *Registry) Resolve(connector string, source, target Endpoint) ([]Candidate, error) {
	c, err := ConnectorFor(connector)
	if err != nil {
		return nil, err
	}
	res, err := r.For(c)
	if err != nil {
		return nil, err
	}
	return res.Resolve(source, target)
}
