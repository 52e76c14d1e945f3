// Package manifest handles refobj.toml runtime configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chazu/refobj/vm"
)

// FileName is the name of the configuration file.
const FileName = "refobj.toml"

// Manifest represents a refobj.toml configuration.
type Manifest struct {
	Project   Project     `toml:"project"`
	Instances Instances   `toml:"instances"`
	Logging   Logging     `toml:"logging"`
	Locking   Locking     `toml:"locking"`
	Constants Constants   `toml:"constants"`
	Classes   []ClassDecl `toml:"classes"`

	// Dir is the directory containing the refobj.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Instances configures instance construction.
type Instances struct {
	MaxSize int `toml:"max-size"`
}

// Logging configures the commonlog backend.
type Logging struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Locking configures lock diagnostics on class objects.
type Locking struct {
	DetectDeadlocks bool   `toml:"detect-deadlocks"`
	DeadlockTimeout string `toml:"deadlock-timeout"`
}

// Constants declares the constant-object table.
type Constants struct {
	Count int      `toml:"count"`
	Oids  []string `toml:"oids"`
}

// ClassDecl declares a class defined at boot.
type ClassDecl struct {
	Oid        string   `toml:"oid"`
	Name       string   `toml:"name"`
	Superclass string   `toml:"superclass"`
	Attributes []string `toml:"attributes"`
}

// Default returns the configuration used when no refobj.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults(toml.MetaData{})
	return m
}

// Load parses a refobj.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse error in %s: unknown key %q", path, undecoded[0].String())
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults(md)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a refobj.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) applyDefaults(md toml.MetaData) {
	if m.Instances.MaxSize == 0 {
		m.Instances.MaxSize = vm.DefaultMaxInstanceSize
	}
	// An absent [constants] section means the compiled-in table.
	if !md.IsDefined("constants") {
		m.Constants.Count = vm.DefaultConstantCount
		m.Constants.Oids = append([]string(nil), vm.DefaultConstantOids...)
	}
	if m.Locking.DeadlockTimeout == "" {
		m.Locking.DeadlockTimeout = "30s"
	}
}

// Validate checks values that decoding alone cannot.
func (m *Manifest) Validate() error {
	if m.Instances.MaxSize < 0 {
		return fmt.Errorf("instances.max-size must not be negative, got %d", m.Instances.MaxSize)
	}
	if _, err := m.deadlockTimeout(); err != nil {
		return err
	}
	if len(m.Constants.Oids) != m.Constants.Count {
		return fmt.Errorf("constants: %d oids listed, count is %d", len(m.Constants.Oids), m.Constants.Count)
	}
	seen := make(map[string]int, len(m.Classes))
	for i, c := range m.Classes {
		if c.Oid == "" {
			return fmt.Errorf("classes[%d]: missing oid", i)
		}
		if j, dup := seen[c.Oid]; dup {
			return fmt.Errorf("classes[%d]: duplicate class oid %s (also classes[%d])", i, c.Oid, j)
		}
		seen[c.Oid] = i
	}
	return nil
}

func (m *Manifest) deadlockTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(m.Locking.DeadlockTimeout)
	if err != nil {
		return 0, fmt.Errorf("locking.deadlock-timeout: %w", err)
	}
	return d, nil
}

// BootOptions converts the manifest to runtime boot options.
func (m *Manifest) BootOptions() vm.BootOptions {
	opts := vm.BootOptions{
		MaxInstanceSize: m.Instances.MaxSize,
		ConstantCount:   m.Constants.Count,
		ConstantOids:    m.Constants.Oids,
	}
	for _, c := range m.Classes {
		opts.Classes = append(opts.Classes, vm.ClassSpec{
			Oid:        c.Oid,
			Name:       c.Name,
			Superclass: c.Superclass,
			Attributes: c.Attributes,
		})
	}
	return opts
}

// LockingOptions returns the lock diagnostics settings.
func (m *Manifest) LockingOptions() (enabled bool, timeout time.Duration, err error) {
	d, err := m.deadlockTimeout()
	if err != nil {
		return false, 0, err
	}
	return m.Locking.DetectDeadlocks, d, nil
}

// ApplyLocking installs the lock diagnostics settings process-wide.
// It must run at startup, before any runtime is booted.
func (m *Manifest) ApplyLocking() error {
	enabled, d, err := m.LockingOptions()
	if err != nil {
		return err
	}
	vm.SetLockDiagnostics(enabled, d)
	return nil
}

// LogPath returns the log file path, or nil for standard error.
func (m *Manifest) LogPath() *string {
	if m.Logging.Path == "" {
		return nil
	}
	p := m.Logging.Path
	if !filepath.IsAbs(p) && m.Dir != "" {
		p = filepath.Join(m.Dir, p)
	}
	return &p
}
