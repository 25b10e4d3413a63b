package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag string
		want Environment
	}{
		{flag: "development", want: Development},
		{flag: "test", want: Test},
		{flag: "production", want: Production},
		{flag: " PROD ", want: Production},
		{flag: "staging", want: Development},
		{flag: "", want: Development},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got := EnvFlagToEnvironment(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}
