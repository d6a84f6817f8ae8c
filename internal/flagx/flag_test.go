package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "pantry.db", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "pantry.db"},
		},
		{
			name:    "equals form",
			args:    []string{"-a=http://localhost:8000", "-x=2"},
			allowed: []string{"-a"},
			want:    []string{"-a=http://localhost:8000"},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-t"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "order and repeats preserved",
			args:    []string{"-c", "one.json", "positional", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-x", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/pk.json", ConfigPath([]string{"-c", "/etc/pk.json"}))
	assert.Equal(t, "/etc/pk.json", ConfigPath([]string{"-a", "x", "-config=/etc/pk.json"}))
	assert.Equal(t, "/b.json", ConfigPath([]string{"-c", "/a.json", "-config", "/b.json"}))
	assert.Empty(t, ConfigPath([]string{"-d", "pantry.db"}))
}
