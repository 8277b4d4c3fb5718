package injector

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/config"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
)

func TestInitializeRunner(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "silent"
	runner := InitializeRunner(cfg)
	require.NotNil(t, runner)

	doc, err := scenario.LoadYAML(strings.NewReader(`
entities:
  - {ref: a, kind: electricity-pole, position: {x: 0.5, y: 0.5}, electrical_id: 1}
  - {ref: b, kind: electricity-pole, position: {x: 5.5, y: 0.5}, electrical_id: 1, flow_rate: 3}
requests:
  - {op: group}
`))
	require.NoError(t, err)
	res, err := runner.Run(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, res.Outcomes[0].Groups, 1)
	assert.Equal(t, "1", res.Outcomes[0].Groups[0].ID)
}

func TestInitializeServer(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "silent"
	srv := InitializeServer(cfg)
	require.NotNil(t, srv)
	assert.False(t, srv.GetStats().Running)
}
