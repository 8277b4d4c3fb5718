// Package scenario describes a world snapshot plus a list of connection and
// grouping requests, and runs them against the resolvers.
package scenario

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
)

// Operations a request can ask for.
const (
	OpResolve = "resolve"
	OpGroup   = "group"
)

// Document is one scenario file.
type Document struct {
	Name     string       `json:"name" yaml:"name"`
	Entities []EntitySpec `json:"entities" yaml:"entities"`
	Requests []Request    `json:"requests" yaml:"requests"`
}

// EntitySpec is the union of every entity variant's fields; Kind picks the
// variant and fields it does not use are ignored.
type EntitySpec struct {
	Ref       string            `json:"ref,omitempty" yaml:"ref,omitempty"`
	Kind      models.Kind       `json:"kind" yaml:"kind"`
	Name      string            `json:"name" yaml:"name"`
	Position  geometry.Position `json:"position" yaml:"position"`
	Direction string            `json:"direction,omitempty" yaml:"direction,omitempty"`

	TileWidth    float64         `json:"tile_width,omitempty" yaml:"tile_width,omitempty"`
	TileHeight   float64         `json:"tile_height,omitempty" yaml:"tile_height,omitempty"`
	Category     models.Category `json:"category,omitempty" yaml:"category,omitempty"`
	Status       models.Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Warnings     []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	ElectricalID int             `json:"electrical_id,omitempty" yaml:"electrical_id,omitempty"`

	Recipe                 string                     `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	ConnectionPoints       []geometry.Position        `json:"connection_points,omitempty" yaml:"connection_points,omitempty"`
	InputConnectionPoints  []geometry.IndexedPosition `json:"input_connection_points,omitempty" yaml:"input_connection_points,omitempty"`
	OutputConnectionPoints []geometry.IndexedPosition `json:"output_connection_points,omitempty" yaml:"output_connection_points,omitempty"`
	SteamOutputPoint       *geometry.Position         `json:"steam_output_point,omitempty" yaml:"steam_output_point,omitempty"`
	Fluids                 []models.Fluid             `json:"fluids,omitempty" yaml:"fluids,omitempty"`

	FluidboxID int          `json:"fluidbox_id,omitempty" yaml:"fluidbox_id,omitempty"`
	Fluid      models.Fluid `json:"fluid,omitempty" yaml:"fluid,omitempty"`

	InputPosition  *geometry.Position `json:"input_position,omitempty" yaml:"input_position,omitempty"`
	OutputPosition *geometry.Position `json:"output_position,omitempty" yaml:"output_position,omitempty"`
	Inventory      models.Inventory   `json:"inventory,omitempty" yaml:"inventory,omitempty"`
	IsSource       bool               `json:"is_source,omitempty" yaml:"is_source,omitempty"`
	IsTerminus     bool               `json:"is_terminus,omitempty" yaml:"is_terminus,omitempty"`

	PickupPosition *geometry.Position `json:"pickup_position,omitempty" yaml:"pickup_position,omitempty"`
	DropPosition   *geometry.Position `json:"drop_position,omitempty" yaml:"drop_position,omitempty"`

	FlowRate float64 `json:"flow_rate,omitempty" yaml:"flow_rate,omitempty"`
}

// Request is a single resolve or group call.
type Request struct {
	ID        string       `json:"id,omitempty" yaml:"id,omitempty"`
	Op        string       `json:"op" yaml:"op"`
	Connector string       `json:"connector,omitempty" yaml:"connector,omitempty"`
	Source    EndpointSpec `json:"source,omitempty" yaml:"source,omitempty"`
	Target    EndpointSpec `json:"target,omitempty" yaml:"target,omitempty"`
	// Refs limits a group request to these entities; empty means all of them.
	Refs []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// EndpointSpec names one side of a resolve request: an entity, a group built
// from several entities, or a bare position.
type EndpointSpec struct {
	Ref      string             `json:"ref,omitempty" yaml:"ref,omitempty"`
	Group    []string           `json:"group,omitempty" yaml:"group,omitempty"`
	Position *geometry.Position `json:"position,omitempty" yaml:"position,omitempty"`
}

func LoadYAML(r io.Reader) (*Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode scenario yaml")
	}
	return &d, nil
}

func LoadJSON(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode scenario json")
	}
	return &d, nil
}

// LoadFile picks the decoder from the file extension; anything but .json is read as YAML.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open scenario %s", path)
	}
	defer f.Close()

	var d *Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		d, err = LoadJSON(f)
	} else {
		d, err = LoadYAML(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load scenario %s", path)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}
