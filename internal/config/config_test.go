package config

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Difftool != "meld" {
		t.Errorf("Difftool = %q, want meld", cfg.Difftool)
	}
	if cfg.Sensitivity != 0 {
		t.Errorf("Sensitivity = %d, want 0", cfg.Sensitivity)
	}
	if cfg.Color != "auto" {
		t.Errorf("Color = %q, want auto", cfg.Color)
	}
	if !cfg.Pause {
		t.Error("Pause = false, want true")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    func(Config) bool
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			data: "",
			want: func(c Config) bool { return c == Default() },
		},
		{
			name: "overrides",
			data: "upstream = \"origin/master\"\ndifftool = \"vimdiff\"\nsensitivity = 2\npause = false\n",
			want: func(c Config) bool {
				return c.Upstream == "origin/master" && c.Difftool == "vimdiff" &&
					c.Sensitivity == 2 && !c.Pause
			},
		},
		{
			name:    "bad toml",
			data:    "difftool = ",
			wantErr: true,
		},
		{
			name:    "bad color mode",
			data:    "color = \"sometimes\"",
			wantErr: true,
		},
		{
			name:    "negative sensitivity",
			data:    "sensitivity = -1",
			wantErr: true,
		},
		{
			name:    "empty difftool",
			data:    "difftool = \"\"",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !tt.want(cfg) {
				t.Errorf("Parse() = %+v", cfg)
			}
		})
	}
}

func TestParse_ExpandsLogDir(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("log_dir = \"~/logs\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if strings.HasPrefix(cfg.LogDir, "~") {
		t.Errorf("LogDir = %q, want ~ expanded", cfg.LogDir)
	}
	if !strings.HasSuffix(cfg.LogDir, "/logs") {
		t.Errorf("LogDir = %q, want .../logs", cfg.LogDir)
	}
}

func TestParseSensitivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"2", 2, false},
		{"-1", 0, true},
		{"high", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSensitivity(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSensitivity(%q) = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSensitivity(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSensitivity(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(defaultConfig))
	if err != nil {
		t.Fatalf("Parse(defaultConfig) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("template = %+v, want the built-in defaults %+v", cfg, Default())
	}
}
