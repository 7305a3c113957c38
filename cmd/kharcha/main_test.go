package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{
		"parse", "suggest", "train", "review", "capture", "serve", "mcp",
		"expenses", "budget", "debts", "goals", "export", "import",
		"categories", "version",
	} {
		assert.True(t, names[want], "command %q should be registered", want)
	}
}

func TestParseCmdFlags(t *testing.T) {
	cmd := parseCmd()

	flag := cmd.Flag("date")
	require.NotNil(t, flag, "date flag should exist")
	assert.Contains(t, flag.Usage, "Reference date")

	flag = cmd.Flag("log")
	require.NotNil(t, flag, "log flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestReviewCmdFlags(t *testing.T) {
	cmd := reviewCmd()

	flag := cmd.Flag("threshold")
	require.NotNil(t, flag, "threshold flag should exist")
	assert.Equal(t, "0.7", flag.DefValue, "default should match the acceptance threshold")

	flag = cmd.Flag("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "20", flag.DefValue)
}

func TestServeCmdFlags(t *testing.T) {
	cmd := serveCmd()

	flag := cmd.Flag("addr")
	require.NotNil(t, flag, "addr flag should exist")
	assert.Equal(t, ":8080", flag.DefValue)

	flag = cmd.Flag("reload-schedule")
	require.NotNil(t, flag, "reload-schedule flag should exist")
	assert.Equal(t, "@every 5m", flag.DefValue)
}

func TestMcpCmdFlags(t *testing.T) {
	cmd := mcpCmd()

	flag := cmd.Flag("http")
	require.NotNil(t, flag, "http flag should exist")
	assert.Equal(t, "", flag.DefValue, "stdio should be the default transport")
}

func TestExpensesCmdTree(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range expensesCmd().Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"list", "show", "summary", "delete", "reset"} {
		assert.True(t, names[want], "expenses subcommand %q should exist", want)
	}
}
