package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorCombinesMessages(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddError("reserved_name", "collides with a reserved attribute name", "User", "_FIELDS_")
	d.AddError("unknown_parent", "parent is not declared", "Summary", "Usr", "User")
	d.AddWarning("unused_constant", "constant is not a field", "User", "fire")

	require.True(t, d.HasErrors())
	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"[User] _FIELDS_: [reserved_name] collides with a reserved attribute name; "+
			"[Summary] Usr: [unknown_parent] parent is not declared (did you mean User?)",
		err.Error())
	assert.Len(t, d.All(), 3)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("defined", "entity defined", "User", "")
	b.AddError("missing_alias", "alias is empty", "User", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

func TestDiagnostics_ForEntityAndSummary(t *testing.T) {
	var d Diagnostics

	d.AddError("unknown_func", "func is not registered", "Stamped", "Nwo", "Now")
	d.AddWarning("unused_definition", "defines a name that is not a field", "User", "fire")
	d.AddInfo("supplied_by", "Order.ID int64", "OrderView", "id")
	d.AddWarning("shadowed_name", "alias shadows a field", "Stamped", "user")

	assert.Equal(t, "1 error(s), 2 warning(s)", d.Summary())

	stamped := d.ForEntity("Stamped")
	require.Len(t, stamped.Errors, 1)
	require.Len(t, stamped.Warnings, 1)
	assert.Empty(t, stamped.Infos)
	assert.Equal(t, []string{"Now"}, stamped.Errors[0].Suggestions)
	assert.Equal(t, "user", stamped.Warnings[0].Name)

	assert.Equal(t, "0 error(s), 0 warning(s)", d.ForEntity("Missing").Summary())
}
