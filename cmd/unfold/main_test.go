package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScenario_KnownNames(t *testing.T) {
	for _, name := range []string{"plane", "cylinder", "sphere", "sleeve"} {
		m := buildScenario(name)
		assert.NotNil(t, m, "scenario %q should build a mesh", name)
		assert.Greater(t, m.FaceCount(), 0)
	}
}

func TestBuildScenario_UnknownName(t *testing.T) {
	assert.Nil(t, buildScenario("nonexistent"))
}
