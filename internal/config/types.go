package config

import (
	"fmt"
	"sort"
	"time"
)

// Duration wraps time.Duration for YAML unmarshalling.
type Duration struct {
	time.Duration
	explicit bool
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	d.explicit = true
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// IsSet reports whether the duration was explicitly provided or non-zero.
func (d Duration) IsSet() bool {
	return d.explicit || d.Duration != 0
}

// Manifest mirrors the tasks.yaml document structure.
type Manifest struct {
	Version  string               `yaml:"version"`
	Defaults Defaults             `yaml:"defaults"`
	Tasks    map[string]*TaskSpec `yaml:"tasks"`
}

// Defaults captures settings applied to tasks that omit them.
type Defaults struct {
	Workdir string   `yaml:"workdir"`
	Timeout Duration `yaml:"timeout"`
}

// TaskSpec describes one named command invocation.
type TaskSpec struct {
	Command       []string          `yaml:"command"`
	Workdir       string            `yaml:"workdir"`
	Env           map[string]string `yaml:"env"`
	EnvFromFile   string            `yaml:"envFromFile"`
	Timeout       Duration          `yaml:"timeout"`
	CaptureStdout *bool             `yaml:"captureStdout"`
	CaptureStderr *bool             `yaml:"captureStderr"`

	// ResolvedWorkdir is the absolute working directory computed at load time.
	ResolvedWorkdir string `yaml:"-"`
}

// ApplyDefaults fills unset task fields from the manifest defaults. Capture
// flags default to true on both streams.
func (m *Manifest) ApplyDefaults() error {
	for _, task := range m.Tasks {
		if task == nil {
			continue
		}
		if !task.Timeout.IsSet() && m.Defaults.Timeout.IsSet() {
			task.Timeout = m.Defaults.Timeout
		}
		if task.CaptureStdout == nil {
			task.CaptureStdout = boolPtr(true)
		}
		if task.CaptureStderr == nil {
			task.CaptureStderr = boolPtr(true)
		}
	}
	return nil
}

// Validate checks the manifest for structural errors.
func (m *Manifest) Validate() error {
	if m.Version != "" && m.Version != "1" {
		return fmt.Errorf("unsupported manifest version %q", m.Version)
	}
	if len(m.Tasks) == 0 {
		return fmt.Errorf("manifest defines no tasks")
	}
	for _, name := range m.TaskNames() {
		task := m.Tasks[name]
		if task == nil {
			return fmt.Errorf("task %s: empty definition", name)
		}
		if len(task.Command) == 0 {
			return fmt.Errorf("task %s: command is required", name)
		}
		if task.Command[0] == "" {
			return fmt.Errorf("task %s: command executable is empty", name)
		}
		if task.Timeout.Duration < 0 {
			return fmt.Errorf("task %s: timeout must not be negative", name)
		}
	}
	return nil
}

// TaskNames returns the task names in stable sorted order.
func (m *Manifest) TaskNames() []string {
	names := make([]string, 0, len(m.Tasks))
	for name := range m.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func boolPtr(v bool) *bool {
	return &v
}
