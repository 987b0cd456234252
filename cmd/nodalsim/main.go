// Command nodalsim is a CLI stand-in for the host audio framework pkg/driver
// is built to sit behind: it parses a SPICE-like netlist, lowers it, runs
// the steady-state warm-up ramp, and drives it sample by sample, printing
// the requested output pin voltages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dspcircuits/nodal/pkg/driver"
	"github.com/dspcircuits/nodal/pkg/lower"
	"github.com/dspcircuits/nodal/pkg/netlist"
	"github.com/dspcircuits/nodal/pkg/parse"
	"github.com/dspcircuits/nodal/pkg/util"
)

func main() {
	netlistPath := flag.String("netlist", "", "path to a netlist file (required)")
	outputs := flag.String("outputs", "", "comma-separated output pin names, e.g. out,mid")
	rate := flag.Float64("rate", 48000, "shared input/output sample rate, Hz")
	samples := flag.Int("samples", 32, "number of samples to process (every input port is fed zeros)")
	flag.Parse()

	if *netlistPath == "" {
		fmt.Fprintln(os.Stderr, "nodalsim: -netlist is required")
		flag.Usage()
		os.Exit(2)
	}
	if *outputs == "" {
		fmt.Fprintln(os.Stderr, "nodalsim: -outputs is required")
		flag.Usage()
		os.Exit(2)
	}

	outNames := strings.Split(*outputs, ",")
	for i := range outNames {
		outNames[i] = strings.TrimSpace(outNames[i])
	}

	if err := run(*netlistPath, outNames, *rate, *samples); err != nil {
		log.Fatalf("nodalsim: %v", err)
	}
}

func run(netlistPath string, outNames []string, rate float64, samples int) error {
	raw, err := os.ReadFile(netlistPath)
	if err != nil {
		return fmt.Errorf("read netlist: %w", err)
	}

	parsed, err := parse.Netlist(string(raw))
	if err != nil {
		return fmt.Errorf("parse netlist: %w", err)
	}

	nl, _, err := lower.Lower(parsed, outNames)
	if err != nil {
		return fmt.Errorf("lower netlist: %w", err)
	}

	fmt.Printf("Pins: %d static, %d input, %d dynamic\n", nl.NumStaticPins(), nl.NumInputPins(), nl.NumDynamicPins())
	if err := printParameters(nl); err != nil {
		return fmt.Errorf("print parameters: %w", err)
	}

	model := driver.New(nl, len(outNames))
	host := driver.NewHostPort(model, nl.NumInputPins(), len(outNames))
	host.SetInputSamplingRate(rate)
	host.SetOutputSamplingRate(rate)

	for k := 0; k < nl.NumInputPins(); k++ {
		host.SetInputPort(k, make([]float64, samples))
	}

	if err := host.Process(samples); err != nil {
		return fmt.Errorf("process: %w", err)
	}

	fmt.Println()
	for n := 0; n < samples; n++ {
		values := make([]float64, len(outNames))
		for k := range outNames {
			block := host.GetOutputArray(k)
			values[k] = block[n]
		}
		fmt.Println(util.FormatSampleRow(n, formatNames(outNames), values))
	}

	return nil
}

func formatNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("V(%s)", n)
	}
	return out
}

// paramUnits maps a component's flattened parameter name (pkg/component's
// ParameterName) to the physical unit FormatValueFactor should render it
// with.
var paramUnits = map[string]string{
	"R": "Ohm", "C": "F", "L": "H", "I": "A", "Gain": "",
	"Is": "A", "Vt": "V", "Ne": "", "Br": "", "Bf": "", "N": "",
}

// printParameters lists every placed component's tunable parameters, in the
// teacher's style of reporting circuit values alongside sample output
// (cmd/main.go's "name = value" result lines).
func printParameters(nl *netlist.Netlist) error {
	n := nl.NumParameters()
	if n == 0 {
		return nil
	}
	fmt.Println("Parameters:")
	for k := 0; k < n; k++ {
		name, err := nl.ParameterName(k)
		if err != nil {
			return err
		}
		value, err := nl.Parameter(k)
		if err != nil {
			return err
		}
		fmt.Printf("  %s = %s\n", name, util.FormatValueFactor(value, paramUnits[name]))
	}
	return nil
}
