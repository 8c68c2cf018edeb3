package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_RegistraSubcomandos(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "create-admin", "export", "purge"})
}

func TestPurge_SinConfirmacion(t *testing.T) {
	_, err := run(t, "purge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestCreateAdmin_EmailObligatorio(t *testing.T) {
	_, err := run(t, "create-admin", "--password", "secreto123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestExport_FlagsPorDefecto(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"export"})
	require.NoError(t, err)
	out := cmd.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
	assert.Equal(t, "", out.DefValue)
}
