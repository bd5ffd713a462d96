package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "seed", "import-attendance", "generate", "export-register"}, names)
}

func TestGenerateCmd_RequiresExactlyOneTarget(t *testing.T) {
	for _, args := range [][]string{
		{"generate"},
		{"generate", "--all", "--employee", "EMP001"},
	} {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)

		err := root.Execute()

		assert.EqualError(t, err, "pass exactly one of --employee or --all")
	}
}

func TestImportAttendanceCmd_RequiresFile(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"import-attendance"})

	err := root.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"file" not set`)
}
