// Package render writes simulated signals as text.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/ftl/muxsim/core"
)

// Format of the output.
type Format int

// All formats.
const (
	Table Format = iota
	CSV
	JSON
)

var formatNames = []string{"table", "csv", "json"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, errors.Errorf("unknown output format %q", name)
}

// Write the signals in the given format.
func Write(w io.Writer, format Format, signals ...core.Signal) error {
	switch format {
	case Table:
		return writeTable(w, signals)
	case CSV:
		return writeCSV(w, signals)
	case JSON:
		return writeJSON(w, signals)
	default:
		return errors.Errorf("unknown output format %v", format)
	}
}

// FormatValue formats a sample value. NaN is written as "NaN".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTable(w io.Writer, signals []core.Signal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, signal := range signals {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", signal.Label())
		fmt.Fprintf(tw, "# %s\n", signal.Mode.Explanation())
		if signal.Mode == core.TDM {
			fmt.Fprintln(tw, "time\tvalue\tsymbol")
		} else {
			fmt.Fprintln(tw, "time\tvalue")
		}
		for _, s := range signal.Samples {
			if signal.Mode == core.TDM {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Label, FormatValue(s.Value), s.Symbol)
			} else {
				fmt.Fprintf(tw, "%s\t%s\n", s.Label, FormatValue(s.Value))
			}
		}
		if min, max, ok := signal.Samples.Span(); ok {
			fmt.Fprintf(tw, "# span [%s, %s]\n", FormatValue(min), FormatValue(max))
		}
	}
	return errors.Wrap(tw.Flush(), "cannot write table")
}

func writeCSV(w io.Writer, signals []core.Signal) error {
	out := csv.NewWriter(w)
	multi := len(signals) > 1
	header := []string{"time", "value", "symbol"}
	if multi {
		header = append([]string{"mode"}, header...)
	}
	if err := out.Write(header); err != nil {
		return errors.Wrap(err, "cannot write CSV header")
	}
	for _, signal := range signals {
		for _, s := range signal.Samples {
			record := []string{s.Label, FormatValue(s.Value), s.Symbol}
			if multi {
				record = append([]string{signal.Mode.String()}, record...)
			}
			if err := out.Write(record); err != nil {
				return errors.Wrap(err, "cannot write CSV record")
			}
		}
	}
	out.Flush()
	return errors.Wrap(out.Error(), "cannot write CSV")
}

type jsonSample struct {
	Time   string   `json:"time"`
	Value  *float64 `json:"value"`
	Symbol string   `json:"symbol,omitempty"`
}

type jsonSignal struct {
	Mode    string       `json:"mode"`
	Label   string       `json:"label"`
	Samples []jsonSample `json:"samples"`
}

func toJSON(signal core.Signal) jsonSignal {
	result := jsonSignal{
		Mode:    signal.Mode.String(),
		Label:   signal.Label(),
		Samples: make([]jsonSample, len(signal.Samples)),
	}
	for i, s := range signal.Samples {
		result.Samples[i] = jsonSample{Time: s.Label, Symbol: s.Symbol}
		if !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0) {
			v := s.Value
			result.Samples[i].Value = &v
		}
	}
	return result
}

func writeJSON(w io.Writer, signals []core.Signal) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	var value interface{}
	if len(signals) == 1 {
		value = toJSON(signals[0])
	} else {
		all := make([]jsonSignal, len(signals))
		for i, signal := range signals {
			all[i] = toJSON(signal)
		}
		value = all
	}
	return errors.Wrap(encoder.Encode(value), "cannot write JSON")
}
