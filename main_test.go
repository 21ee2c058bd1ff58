package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tt := []struct {
		name     string
		args     []string
		exitCode int
		expected string
	}{
		{"tdm defaults", []string{"-static", "-format", "csv"}, 0, "time,value,symbol\n0,1,1\n1,1,1\n2,0,0\n3,1,1\n4,1,1\n5,0,0\n6,0,0\n7,0,0\n"},
		{"wdm", []string{"-static", "-mode", "wdm", "-a", "1", "-b", "011", "-format", "csv"}, 0, "time,value,symbol\n0,1,\n1,2,\n2,2,\n"},
		{"zero invalid", []string{"-static", "-mode", "WDM", "-a", "1x", "-b", "1", "-invalid", "zero", "-format", "csv"}, 0, "time,value,symbol\n0,3,\n1,0,\n"},
		{"empty streams", []string{"-static", "-mode", "TDM", "-a", "", "-b", "", "-format", "csv"}, 0, "time,value,symbol\n"},
		{"empty stream A", []string{"-static", "-mode", "TDM", "-a", "", "-b", "01", "-format", "csv"}, 0, "time,value,symbol\n1,0,0\n3,1,1\n"},
		{"empty streams in WDM", []string{"-static", "-mode", "WDM", "-a", "", "-b", "", "-format", "csv"}, 0, "time,value,symbol\n"},
		{"empty mode", []string{"-static", "-mode", ""}, 2, ""},
		{"reject invalid", []string{"-static", "-mode", "WDM", "-a", "1x", "-invalid", "reject"}, 1, ""},
		{"unknown mode", []string{"-static", "-mode", "CDM"}, 2, ""},
		{"unknown format", []string{"-static", "-format", "xml"}, 2, ""},
		{"unknown flag", []string{"-static", "-speed", "fast"}, 2, ""},
		{"extra argument", []string{"-static", "1010"}, 2, ""},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			stdout := new(bytes.Buffer)
			stderr := new(bytes.Buffer)

			exitCode := run(tc.args, stdout, stderr)

			assert.Equal(t, tc.exitCode, exitCode)
			assert.Equal(t, tc.expected, stdout.String())
		})
	}
}

func TestRunAllModes(t *testing.T) {
	stdout := new(bytes.Buffer)

	exitCode := run([]string{"-static", "-mode", "all", "-a", "1", "-b", "0", "-format", "csv"}, stdout, new(bytes.Buffer))

	assert.Equal(t, 0, exitCode)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, "mode,time,value,symbol", lines[0])
	assert.Equal(t, "TDM,0,1,1", lines[1])
	assert.Equal(t, "TDM,1,0,0", lines[2])
	assert.Equal(t, "FDM,0.00,0,", lines[3])
	assert.Equal(t, "WDM,0,1,", lines[len(lines)-1])
	assert.Len(t, lines, 1+2+100+1)
}
