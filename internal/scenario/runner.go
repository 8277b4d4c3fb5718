package scenario

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/network"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/resolver"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

// Result is the outcome of every request of one document, in request order.
type Result struct {
	RunID      string    `json:"run_id"`
	Scenario   string    `json:"scenario"`
	SnapshotID string    `json:"snapshot_id"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Failed counts outcomes that carry an error.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Error != nil {
			n++
		}
	}
	return n
}

type Outcome struct {
	ID         string               `json:"id"`
	Op         string               `json:"op"`
	Connector  string               `json:"connector,omitempty"`
	Candidates []resolver.Candidate `json:"candidates,omitempty"`
	Groups     []GroupView          `json:"groups,omitempty"`
	Error      *ErrorView           `json:"error,omitempty"`
}

// ErrorView is a resolver error flattened for JSON clients.
type ErrorView struct {
	Code    resolver.ErrorCode `json:"code"`
	Kind    string             `json:"kind"`
	Message string             `json:"message"`
	Context map[string]any     `json:"context,omitempty"`
}

type GroupView struct {
	Kind        models.Kind         `json:"kind"`
	ID          string              `json:"id"`
	Fingerprint string              `json:"fingerprint"`
	Status      models.Status       `json:"status"`
	Position    geometry.Position   `json:"position"`
	Members     []geometry.Position `json:"members"`
	Inputs      []geometry.Position `json:"inputs,omitempty"`
	Outputs     []geometry.Position `json:"outputs,omitempty"`
	Inventory   models.Inventory    `json:"inventory,omitempty"`
}

// Runner executes documents. Each run gets its own snapshot, so a Runner may
// be shared between goroutines.
type Runner struct {
	logger  log.Log
	opts    resolver.Options
	builder *network.Builder
}

func NewRunner(logger log.Log, opts resolver.Options, builder *network.Builder) *Runner {
	logger = log.OrNop(logger)
	if builder == nil {
		builder = network.NewBuilder(logger)
	}
	return &Runner{logger: logger.Named("scenario"), opts: opts, builder: builder}
}

// Run builds the document's world and answers its requests. Resolver failures
// are reported per outcome; only a malformed document or a cancelled context
// fails the run.
func (r *Runner) Run(ctx context.Context, doc *Document) (*Result, error) {
	started := time.Now()
	l, err := doc.build()
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %q", doc.Name)
	}
	if err = doc.validate(l); err != nil {
		return nil, errors.Wrapf(err, "scenario %q", doc.Name)
	}

	snapshot := world.NewSnapshot(l.entities...)
	registry := resolver.NewRegistry(snapshot, r.logger, r.opts)
	res := &Result{
		RunID:      uuid.NewString(),
		Scenario:   doc.Name,
		SnapshotID: snapshot.ID().String(),
		Outcomes:   make([]Outcome, 0, len(doc.Requests)),
	}
	logger := r.logger.With(log.String("run_id", res.RunID), log.String("scenario", doc.Name))

	for i, req := range doc.Requests {
		if err = ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "scenario %q interrupted at request %d", doc.Name, i)
		}
		outcome, err := r.runRequest(l, registry, i, req)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %q", doc.Name)
		}
		if outcome.Error != nil {
			logger.Debug("request failed",
				log.String("id", outcome.ID),
				log.String("kind", outcome.Error.Kind),
				log.String("message", outcome.Error.Message),
			)
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}

	logger.Info("scenario finished",
		log.Int("entities", len(l.entities)),
		log.Int("requests", len(doc.Requests)),
		log.Int("failed", res.Failed()),
		log.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

func (r *Runner) runRequest(l *layout, registry *resolver.Registry, i int, req Request) (Outcome, error) {
	out := Outcome{ID: req.ID, Op: req.Op, Connector: req.Connector}
	if out.ID == "" {
		out.ID = fmt.Sprintf("%s-%d", req.Op, i)
	}

	switch req.Op {
	case OpResolve:
		source, err := r.endpoint(l, req.Source)
		if err != nil {
			return out, errors.Wrapf(err, "request %s source", out.ID)
		}
		target, err := r.endpoint(l, req.Target)
		if err != nil {
			return out, errors.Wrapf(err, "request %s target", out.ID)
		}
		candidates, err := registry.Resolve(req.Connector, source, target)
		if err != nil {
			out.Error = errorView(err)
			return out, nil
		}
		out.Candidates = candidates
	case OpGroup:
		entities := l.entities
		if len(req.Refs) > 0 {
			var err error
			if entities, err = l.lookup(req.Refs); err != nil {
				return out, errors.Wrapf(err, "request %s", out.ID)
			}
		}
		for _, g := range r.builder.AgglomerateGroupableEntities(entities) {
			out.Groups = append(out.Groups, groupView(g))
		}
	}
	return out, nil
}

func (r *Runner) endpoint(l *layout, spec EndpointSpec) (resolver.Endpoint, error) {
	switch {
	case spec.Ref != "":
		e, err := l.lookup([]string{spec.Ref})
		if err != nil {
			return resolver.Endpoint{}, err
		}
		return resolver.Of(e[0]), nil
	case len(spec.Group) > 0:
		members, err := l.lookup(spec.Group)
		if err != nil {
			return resolver.Endpoint{}, err
		}
		groups := r.builder.AgglomerateGroupableEntities(members)
		if len(groups) == 0 {
			return resolver.Endpoint{}, errors.Errorf("entities %v do not form a group", spec.Group)
		}
		return resolver.Of(groups[0]), nil
	case spec.Position != nil:
		return resolver.At(*spec.Position), nil
	}
	return resolver.Endpoint{}, errors.New("endpoint needs one of ref, group or position")
}

func (d *Document) validate(l *layout) error {
	for i, req := range d.Requests {
		switch req.Op {
		case OpResolve:
			sides := []struct {
				name string
				ep   EndpointSpec
			}{{"source", req.Source}, {"target", req.Target}}
			for _, side := range sides {
				if err := validateEndpoint(l, side.ep); err != nil {
					return errors.Wrapf(err, "request %d %s", i, side.name)
				}
			}
		case OpGroup:
			if _, err := l.lookup(req.Refs); err != nil {
				return errors.Wrapf(err, "request %d", i)
			}
		default:
			return errors.Errorf("request %d: unknown op %q", i, req.Op)
		}
	}
	return nil
}

func validateEndpoint(l *layout, ep EndpointSpec) error {
	set := 0
	if ep.Ref != "" {
		set++
		if _, err := l.lookup([]string{ep.Ref}); err != nil {
			return err
		}
	}
	if len(ep.Group) > 0 {
		set++
		if _, err := l.lookup(ep.Group); err != nil {
			return err
		}
	}
	if ep.Position != nil {
		set++
	}
	if set != 1 {
		return errors.New("endpoint needs exactly one of ref, group or position")
	}
	return nil
}

func errorView(err error) *ErrorView {
	var resolveErr *resolver.Error
	if errors.As(err, &resolveErr) {
		return &ErrorView{
			Code:    resolveErr.Code,
			Kind:    resolveErr.Code.String(),
			Message: resolveErr.Error(),
			Context: resolveErr.Context,
		}
	}
	code := resolver.GetErrorCode(err)
	return &ErrorView{Code: code, Kind: code.String(), Message: err.Error()}
}

func groupView(g models.Group) GroupView {
	core := g.Core()
	v := GroupView{
		Kind:        g.Kind(),
		Fingerprint: fmt.Sprintf("%016x", network.Fingerprint(g)),
		Status:      core.Status,
		Position:    core.Position,
	}
	for _, m := range g.Members() {
		v.Members = append(v.Members, m.Core().Position)
	}
	switch t := g.(type) {
	case *models.BeltGroup:
		v.ID = strconv.FormatUint(t.ID, 16)
		v.Inputs = beltPositions(t.Inputs)
		v.Outputs = beltPositions(t.Outputs)
		v.Inventory = t.Inventory
	case *models.PipeGroup:
		v.ID = strconv.Itoa(t.ID)
	case *models.ElectricityGroup:
		v.ID = strconv.Itoa(t.ID)
	}
	return v
}

func beltPositions(belts []*models.TransportBelt) []geometry.Position {
	out := make([]geometry.Position, len(belts))
	for i, b := range belts {
		out[i] = b.Position
	}
	return out
}
