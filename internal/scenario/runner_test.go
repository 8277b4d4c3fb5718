package scenario

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/resolver"
)

func runFile(t *testing.T, name string) *Result {
	t.Helper()
	doc, err := LoadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	res, err := NewRunner(nil, resolver.DefaultOptions(), nil).Run(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, res.Outcomes, len(doc.Requests))
	return res
}

func TestRunSteamScenario(t *testing.T) {
	res := runFile(t, "steam.yaml")

	assert.Equal(t, "steam-power", res.Scenario)
	assert.NotEmpty(t, res.RunID)
	assert.NotEmpty(t, res.SnapshotID)
	assert.Equal(t, 1, res.Failed())

	pipe := res.Outcomes[0]
	require.Nil(t, pipe.Error)
	require.NotEmpty(t, pipe.Candidates)
	assert.Equal(t, geometry.RoleWater, pipe.Candidates[0].SourceRole)
	assert.Equal(t, geometry.RoleWater, pipe.Candidates[0].TargetRole)

	belt := res.Outcomes[1]
	require.NotNil(t, belt.Error)
	assert.Equal(t, resolver.ErrorCodeUnsupportedSourceRole, belt.Error.Code)
	assert.Equal(t, "UnsupportedSourceRole", belt.Error.Kind)
	assert.Contains(t, belt.Error.Message, "inserter")

	groups := res.Outcomes[2]
	require.Len(t, groups.Groups, 1)
	assert.Equal(t, models.KindPipeGroup, groups.Groups[0].Kind)
	assert.Equal(t, "7", groups.Groups[0].ID)
	assert.Len(t, groups.Groups[0].Members, 3)
}

func TestRunBeltScenario(t *testing.T) {
	res := runFile(t, "belts.json")

	all := res.Outcomes[0]
	assert.Equal(t, "group-0", all.ID)
	require.Len(t, all.Groups, 2)
	assert.Equal(t, []geometry.Position{geometry.Pos(0, 0)}, all.Groups[0].Inputs)
	assert.Equal(t, []geometry.Position{geometry.Pos(1, 0)}, all.Groups[0].Outputs)
	assert.Equal(t, models.StatusWorking, all.Groups[0].Status)
	assert.Equal(t, models.StatusEmpty, all.Groups[1].Status)
	assert.NotEqual(t, all.Groups[0].Fingerprint, all.Groups[1].Fingerprint)

	toLine := res.Outcomes[1]
	require.Nil(t, toLine.Error)
	require.NotEmpty(t, toLine.Candidates)
	assert.Equal(t, geometry.Pos(1.5, 1.5), toLine.Candidates[0].Source)
}

func TestRunRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown kind",
			doc:  "entities:\n  - {kind: rocket-silo, position: {x: 0, y: 0}}\n",
			want: "unknown entity kind",
		},
		{
			name: "duplicate ref",
			doc:  "entities:\n  - {ref: a, kind: pipe}\n  - {ref: a, kind: pipe}\n",
			want: "duplicate ref",
		},
		{
			name: "unknown ref",
			doc:  "entities:\n  - {ref: a, kind: pipe}\nrequests:\n  - {op: resolve, connector: pipe, source: {ref: a}, target: {ref: b}}\n",
			want: `unknown entity ref "b"`,
		},
		{
			name: "ambiguous endpoint",
			doc:  "entities:\n  - {ref: a, kind: pipe}\nrequests:\n  - {op: resolve, connector: pipe, source: {ref: a, position: {x: 1, y: 1}}, target: {ref: a}}\n",
			want: "exactly one",
		},
		{
			name: "unknown op",
			doc:  "requests:\n  - {op: destroy}\n",
			want: "unknown op",
		},
		{
			name: "boiler without steam output",
			doc:  "entities:\n  - {kind: boiler, position: {x: 0, y: 0}}\n",
			want: "steam_output_point",
		},
		{
			name: "bad direction",
			doc:  "entities:\n  - {kind: pipe, direction: sideways}\n",
			want: "unknown direction",
		},
	}
	runner := NewRunner(nil, resolver.DefaultOptions(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := LoadYAML(strings.NewReader(tt.doc))
			require.NoError(t, err)
			_, err = runner.Run(context.Background(), doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunUnknownConnectorIsAnOutcome(t *testing.T) {
	doc, err := LoadYAML(strings.NewReader(
		"entities:\n  - {ref: a, kind: pipe}\nrequests:\n  - {op: resolve, connector: rail, source: {ref: a}, target: {position: {x: 4, y: 4}}}\n"))
	require.NoError(t, err)

	res, err := NewRunner(nil, resolver.DefaultOptions(), nil).Run(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, res.Outcomes[0].Error)
	assert.Equal(t, resolver.ErrorCodeUnknownConnector, res.Outcomes[0].Error.Code)
}

func TestRunHonoursCancellation(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "steam.yaml"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(nil, resolver.DefaultOptions(), nil).Run(ctx, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadJSONRejectsUnknownFields(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"name": "x", "entitys": []}`))
	assert.Error(t, err)
}

func TestLoadFileNamesScenarioAfterFile(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "steam.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "steam-power", doc.Name)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)
}
