// Package parse turns SPICE-like netlist text into pkg/ast values: a
// line-oriented lexer/parser, plus the SPICE-number scale-suffix grammar
// in spicenum.go.
package parse

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dspcircuits/nodal/pkg/ast"
)

// Error is a malformed-line parse failure (spec §7 ParseError).
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

// Netlist parses a full SPICE-like netlist description into an ast.Netlist.
// Blank lines and lines starting with "*" are comments; ".model" lines
// declare device models; every other non-blank line is a component entry.
func Netlist(input string) (*ast.Netlist, error) {
	out := &ast.Netlist{Models: make(map[string]ast.Model)}

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if strings.HasPrefix(fields[0], ".") {
			if strings.ToLower(fields[0]) != ".model" {
				return nil, &Error{Line: lineNo, Msg: fmt.Sprintf("unsupported directive %q", fields[0])}
			}
			name, model, err := parseModelLine(fields)
			if err != nil {
				return nil, &Error{Line: lineNo, Msg: err.Error()}
			}
			out.Models[name] = *model
			continue
		}

		comp, err := parseComponentLine(fields)
		if err != nil {
			return nil, &Error{Line: lineNo, Msg: err.Error()}
		}
		out.Components = append(out.Components, *comp)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse netlist: %v", err)
	}

	return out, nil
}

// pinCounts gives the number of leading positional node arguments for each
// known device class (spec §6): a SPICE line's node names come first, by
// position, whatever they look like ("0" is a node name, not a number).
// Trailing arguments (value, model name, AC/DC keyword stream) are
// classified token-by-token with the Value-or-pin heuristic. An unrecognized
// class falls back to that heuristic over every argument; pkg/lower rejects
// it as an unknown device class.
var pinCounts = map[byte]int{
	'r': 2, 'c': 2, 'l': 2, 'i': 2, 'v': 2, 'd': 2, 'q': 3, 'e': 4,
}

func parseComponentLine(fields []string) (*ast.Component, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("component entry %q: too few fields", strings.Join(fields, " "))
	}

	comp := &ast.Component{Name: fields[0]}
	nodes := pinCounts[deviceClass(fields[0])]
	if nodes > len(fields)-1 {
		nodes = len(fields) - 1
	}

	for i, tok := range fields[1:] {
		if i < nodes {
			comp.Args = append(comp.Args, ast.Arg{Kind: ast.PinArg, Pin: tok})
			continue
		}
		if v, err := Value(tok); err == nil {
			comp.Args = append(comp.Args, ast.Arg{Kind: ast.NumberArg, Number: v})
			continue
		}
		comp.Args = append(comp.Args, ast.Arg{Kind: ast.PinArg, Pin: tok})
	}
	return comp, nil
}

func deviceClass(name string) byte {
	if name == "" {
		return 0
	}
	return strings.ToLower(name)[0]
}

// parseModelLine parses ".model <name> <kind> key=val key=val ..."
func parseModelLine(fields []string) (string, *ast.Model, error) {
	if len(fields) < 3 {
		return "", nil, fmt.Errorf(".model: too few fields")
	}

	name := fields[1]
	kind := ast.ModelKind(strings.ToLower(fields[2]))
	switch kind {
	case ast.ModelDiode, ast.ModelNPN, ast.ModelPNP:
	default:
		return "", nil, fmt.Errorf(".model %s: unknown kind %q", name, fields[2])
	}

	model := &ast.Model{Kind: kind, Params: make(map[string]float64)}
	for _, tok := range fields[3:] {
		kv := strings.SplitN(tok, "=", 2)
		if len(kv) != 2 {
			return "", nil, fmt.Errorf(".model %s: malformed parameter %q", name, tok)
		}
		v, err := Value(kv[1])
		if err != nil {
			return "", nil, fmt.Errorf(".model %s: parameter %s: %v", name, kv[0], err)
		}
		model.Params[strings.ToLower(kv[0])] = v
	}

	return name, model, nil
}
