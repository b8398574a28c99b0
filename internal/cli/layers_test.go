package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayersCommand_TextOutput(t *testing.T) {
	cmd := NewLayersCommand(&RootOptions{Format: "text"})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, " 0  black")
	assert.Contains(t, out, " 2  invert")
	assert.Contains(t, out, " 8  blue")
}

func TestLayersCommand_JSONOutput(t *testing.T) {
	cmd := NewLayersCommand(&RootOptions{Format: "json"})
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   []LayerInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 9)
	assert.Equal(t, LayerInfo{Index: 0, Name: "black"}, resp.Data[0])
	assert.Equal(t, LayerInfo{Index: 8, Name: "blue"}, resp.Data[8])
}
