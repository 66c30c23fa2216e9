package root_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsaledger/cmd/root"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "hsaledger", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "HSA medical expenses")
	assert.Contains(t, root.Cmd.Long, "append-only yearly ledger")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	dataDirFlag := root.Cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, dataDirFlag)
	assert.Equal(t, "", dataDirFlag.DefValue)

	receiptsDirFlag := root.Cmd.PersistentFlags().Lookup("receipts-dir")
	require.NotNil(t, receiptsDirFlag)
	assert.Equal(t, "", receiptsDirFlag.DefValue)
}

func TestRootCommand_ContainerInjection(t *testing.T) {
	original := root.GetContainer()
	defer root.SetContainer(original)

	root.SetContainer(nil)
	assert.Nil(t, root.GetContainer())
}
