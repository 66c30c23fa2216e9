package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsaledger/cmd/batch"
)

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch [directory]", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "Batch process")
	assert.Contains(t, batch.Cmd.Long, "one failure never stops the run")
	assert.NotNil(t, batch.Cmd.Run)
}

func TestBatchCommand_Flags(t *testing.T) {
	processedFlag := batch.Cmd.Flags().Lookup("processed")
	require.NotNil(t, processedFlag)
	assert.Equal(t, "p", processedFlag.Shorthand)

	deleteFlag := batch.Cmd.Flags().Lookup("delete")
	require.NotNil(t, deleteFlag)
	assert.Equal(t, "false", deleteFlag.DefValue)

	dryRunFlag := batch.Cmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRunFlag)
	assert.Equal(t, "n", dryRunFlag.Shorthand)

	jsonFlag := batch.Cmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "j", jsonFlag.Shorthand)
}

func TestBatchCommand_ArgsOptional(t *testing.T) {
	assert.NoError(t, batch.Cmd.Args(batch.Cmd, []string{}))
	assert.NoError(t, batch.Cmd.Args(batch.Cmd, []string{"incoming"}))
	assert.Error(t, batch.Cmd.Args(batch.Cmd, []string{"a", "b"}))
}
