package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runVersion(cmd, []string{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "grepcore v")
	assert.Contains(t, out, "Go version:")
	assert.Contains(t, out, "OS/Arch:")
}
