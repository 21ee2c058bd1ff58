package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/muxsim/core"
)

var tdmSignal = core.Signal{Mode: core.TDM, Samples: core.Samples{
	{Time: 0, Label: "0", Value: 1, Symbol: "1"},
	{Time: 1, Label: "1", Value: math.NaN(), Symbol: "x"},
}}

var fdmSignal = core.Signal{Mode: core.FDM, Samples: core.Samples{
	{Time: 0, Label: "0.00", Value: 0},
	{Time: 0.01, Label: "0.01", Value: 0.5},
}}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		name     string
		expected Format
	}{
		{"table", Table},
		{"CSV", CSV},
		{" json ", JSON},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseFormat(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	buf := new(bytes.Buffer)

	err := Write(buf, CSV, tdmSignal)

	require.NoError(t, err)
	assert.Equal(t, "time,value,symbol\n0,1,1\n1,NaN,x\n", buf.String())
}

func TestWriteCSVMultipleSignals(t *testing.T) {
	buf := new(bytes.Buffer)

	err := Write(buf, CSV, tdmSignal, fdmSignal)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"mode,time,value,symbol",
		"TDM,0,1,1",
		"TDM,1,NaN,x",
		"FDM,0.00,0,",
		"FDM,0.01,0.5,",
	}, lines)
}

func TestWriteJSON(t *testing.T) {
	buf := new(bytes.Buffer)

	err := Write(buf, JSON, tdmSignal)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"mode": "TDM",
		"label": "TDM Signal",
		"samples": [
			{"time": "0", "value": 1, "symbol": "1"},
			{"time": "1", "value": null, "symbol": "x"}
		]
	}`, buf.String())
}

func TestWriteJSONMultipleSignals(t *testing.T) {
	buf := new(bytes.Buffer)

	err := Write(buf, JSON, fdmSignal, core.Signal{Mode: core.WDM, Samples: core.Samples{}})

	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"mode": "FDM", "label": "FDM Signal", "samples": [
			{"time": "0.00", "value": 0},
			{"time": "0.01", "value": 0.5}
		]},
		{"mode": "WDM", "label": "WDM Signal", "samples": []}
	]`, buf.String())
}

func TestWriteTable(t *testing.T) {
	buf := new(bytes.Buffer)

	err := Write(buf, Table, fdmSignal)

	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# FDM Signal\n"))
	assert.Contains(t, out, core.FDM.Explanation())
	assert.Contains(t, out, "0.01  0.5\n")
	assert.Contains(t, out, "# span [0, 0.5]\n")
}

func TestWriteTableWithoutFiniteValues(t *testing.T) {
	buf := new(bytes.Buffer)
	signal := core.Signal{Mode: core.WDM, Samples: core.Samples{{Label: "0", Value: math.NaN()}}}

	err := Write(buf, Table, signal)

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "# span")
}
