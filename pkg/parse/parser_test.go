package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspcircuits/nodal/pkg/ast"
)

func TestNetlistSkipsBlankLinesAndComments(t *testing.T) {
	text := `
* this is a comment
v1 vin 0 5

r1 vin 0 1k
`
	n, err := Netlist(text)
	require.NoError(t, err)
	require.Len(t, n.Components, 2)
	assert.Equal(t, "v1", n.Components[0].Name)
	assert.Equal(t, "r1", n.Components[1].Name)
}

func TestNetlistParsesComponentArgsAsPinOrNumber(t *testing.T) {
	n, err := Netlist("r1 vin mid 1k")
	require.NoError(t, err)
	require.Len(t, n.Components, 1)
	c := n.Components[0]
	require.Len(t, c.Args, 3)
	assert.Equal(t, ast.PinArg, c.Args[0].Kind)
	assert.Equal(t, "vin", c.Args[0].Pin)
	assert.Equal(t, ast.PinArg, c.Args[1].Kind)
	assert.Equal(t, "mid", c.Args[1].Pin)
	assert.Equal(t, ast.NumberArg, c.Args[2].Kind)
	assert.Equal(t, 1000.0, c.Args[2].Number)
}

func TestNetlistParsesNumericNodeNamesAsPins(t *testing.T) {
	n, err := Netlist("v1 1 0 5V\nr1 1 0 100")
	require.NoError(t, err)
	require.Len(t, n.Components, 2)

	v := n.Components[0]
	require.Len(t, v.Args, 3)
	assert.Equal(t, ast.PinArg, v.Args[0].Kind)
	assert.Equal(t, "1", v.Args[0].Pin)
	assert.Equal(t, ast.PinArg, v.Args[1].Kind)
	assert.Equal(t, "0", v.Args[1].Pin)

	r := n.Components[1]
	require.Len(t, r.Args, 3)
	assert.Equal(t, ast.PinArg, r.Args[0].Kind)
	assert.Equal(t, "1", r.Args[0].Pin)
	assert.Equal(t, ast.PinArg, r.Args[1].Kind)
	assert.Equal(t, "0", r.Args[1].Pin)
	assert.Equal(t, ast.NumberArg, r.Args[2].Kind)
	assert.Equal(t, 100.0, r.Args[2].Number)
}

func TestNetlistParsesModelLine(t *testing.T) {
	n, err := Netlist(".model mynpn npn is=1e-15 bf=150\nq1 c b e mynpn")
	require.NoError(t, err)
	require.Contains(t, n.Models, "mynpn")
	m := n.Models["mynpn"]
	assert.Equal(t, ast.ModelNPN, m.Kind)
	assert.InDelta(t, 1e-15, m.Params["is"], 1e-30)
	assert.InDelta(t, 150.0, m.Params["bf"], 1e-9)
}

func TestNetlistRejectsUnsupportedDirective(t *testing.T) {
	_, err := Netlist(".tran 1u 1m")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 1, perr.Line)
}

func TestNetlistRejectsMalformedModelLine(t *testing.T) {
	_, err := Netlist(".model mynpn")
	require.Error(t, err)
	_, ok := err.(*Error)
	require.True(t, ok)
}

func TestNetlistRejectsUnknownModelKind(t *testing.T) {
	_, err := Netlist(".model foo bogus is=1e-15")
	require.Error(t, err)
}

func TestNetlistRejectsTooFewComponentFields(t *testing.T) {
	_, err := Netlist("r1")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 1, perr.Line)
}

func TestNetlistLineNumbersAreOneIndexed(t *testing.T) {
	text := "v1 vin 0 5\nr1 vin 0 1k\n.tran 1u 1m\n"
	_, err := Netlist(text)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 3, perr.Line)
}
