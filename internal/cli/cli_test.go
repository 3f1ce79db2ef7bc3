package cli

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand(t *testing.T) {
	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"preview", "--volume", "25", "--disposal", "5", "--carry", "25", "--origin-floor", "5"})
	require.NoError(t, root.Execute())

	var got previewOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "7.5t", got.Truck.Label)
	assert.Equal(t, 305.0, got.DisposalCost)
	assert.Equal(t, 70.0, got.LongCarryCost)
	assert.True(t, got.ExternalLiftSuggested)
}

func TestServeRejectsBadFlags(t *testing.T) {
	root := NewRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--pricing-timeout", "0s"})
	assert.Error(t, root.Execute())
}
