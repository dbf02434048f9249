package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMudmapLog_WritesToLogger(t *testing.T) {
	ev, logs := newTestEvaluator(t)
	_, err := ev.Eval("logging.lua", `
		mudmap.log.info("hello from lua")
		mudmap.log.warn("careful")
	`)
	require.NoError(t, err)

	info := logs.FilterMessage("hello from lua").All()
	require.Len(t, info, 1)
	assert.Equal(t, zap.InfoLevel, info[0].Level)
	assert.Equal(t, "logging.lua", info[0].ContextMap()["script"])

	warn := logs.FilterMessage("careful").All()
	require.Len(t, warn, 1)
	assert.Equal(t, zap.WarnLevel, warn[0].Level)
}

func TestMudmapAt_BuildsCell(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	v, err := ev.Eval("at", `return mudmap.at(1, 0)`)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 0}, v)
}

func TestMudmapFix_BuildsDirectionFix(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	v, err := ev.Eval("fix", `return mudmap.fix(40007, 40008, "down")`)
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"from": 40007, "to": 40008, "dir": "down"}, v)
}

func TestMudmapFix_BadArgumentsError(t *testing.T) {
	ev, _ := newTestEvaluator(t)
	_, err := ev.Eval("fix", `return mudmap.fix("x")`)
	assert.Error(t, err)
}
