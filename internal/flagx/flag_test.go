package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgSet := Set{Value: []string{"c", "config"}}

	tests := []struct {
		name string
		args []string
		set  Set
		want []string
	}{
		{
			name: "short flag with separate value",
			args: []string{"-c", "conf.json", "-a", "localhost"},
			set:  cfgSet,
			want: []string{"-c", "conf.json"},
		},
		{
			name: "long flag with equals",
			args: []string{"--config=alt.json", "-a", "localhost"},
			set:  cfgSet,
			want: []string{"--config=alt.json"},
		},
		{
			name: "single and double dash match the same name",
			args: []string{"--c", "one.json", "-config", "two.json"},
			set:  cfgSet,
			want: []string{"--c", "one.json", "-config", "two.json"},
		},
		{
			name: "unknown flags and positionals ignored",
			args: []string{"-x", "1", "--y=2", "positional"},
			set:  cfgSet,
			want: []string{},
		},
		{
			name: "value flag at the end is kept as-is",
			args: []string{"-c"},
			set:  cfgSet,
			want: []string{"-c"},
		},
		{
			name: "value flag followed by another flag takes no value",
			args: []string{"-c", "-notvalue"},
			set:  cfgSet,
			want: []string{"-c"},
		},
		{
			name: "bool flag does not swallow the next argument",
			args: []string{"-d", "positional", "-a", "http://x"},
			set:  Set{Value: []string{"a"}, Bool: []string{"d"}},
			want: []string{"-d", "-a", "http://x"},
		},
		{
			name: "bool flag with explicit value",
			args: []string{"-d=false"},
			set:  Set{Bool: []string{"d"}},
			want: []string{"-d=false"},
		},
		{
			name: "terminator and lone dash are skipped",
			args: []string{"--", "-", "-c", "x.json"},
			set:  cfgSet,
			want: []string{"-c", "x.json"},
		},
		{
			name: "empty args",
			args: []string{},
			set:  cfgSet,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.set))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"-config", "/path/long.json"}))
	})

	t.Run("other flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-a", "http://x", "-d"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
