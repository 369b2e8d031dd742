package solver

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophermdd/mdd"
)

// ErrInvalidConfig is returned when a configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Heuristic names recognized in a Config.
const (
	HeuristicMinLP   = "minlp"   // Merge or delete the lowest ranked states
	HeuristicSimple  = "simple"  // Branch on the unbound variable with the lowest identifier
	HeuristicProblem = "problem" // Branch as the problem suggests, or as "simple" if it has no preference
)

// Config holds the settings of a search, as read from a YAML file.
type Config struct {
	// MaxWidth caps the width of compiled diagrams. 0 means no cap.
	MaxWidth int `yaml:"max_width"`
	// Timeout is the wall-clock budget of the search. 0 means no budget.
	Timeout time.Duration `yaml:"timeout"`
	// FrontierOrder is either "least-promising-first" or "most-promising-first".
	FrontierOrder string `yaml:"frontier_order"`
	// Verbose logs every improvement of the incumbent at info level.
	Verbose bool `yaml:"verbose"`
	// Merge, Delete and Variables name the heuristics to use.
	Merge     string `yaml:"merge"`
	Delete    string `yaml:"delete"`
	Variables string `yaml:"variables"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxWidth:      0,
		Timeout:       0,
		FrontierOrder: LeastPromisingFirst.String(),
		Merge:         HeuristicMinLP,
		Delete:        HeuristicMinLP,
		Variables:     HeuristicProblem,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if c cannot be used.
func (c Config) Validate() error {
	if c.MaxWidth < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative max width %d", c.MaxWidth)
	}
	if c.Timeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative timeout %v", c.Timeout)
	}
	if _, err := ParseFrontierOrder(c.FrontierOrder); err != nil {
		return err
	}
	if c.Merge != "" && c.Merge != HeuristicMinLP {
		return errors.Wrapf(ErrInvalidConfig, "unknown merge heuristic %q", c.Merge)
	}
	if c.Delete != "" && c.Delete != HeuristicMinLP {
		return errors.Wrapf(ErrInvalidConfig, "unknown delete heuristic %q", c.Delete)
	}
	switch c.Variables {
	case "", HeuristicSimple, HeuristicProblem:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown variable heuristic %q", c.Variables)
	}
	return nil
}

// LoadConfig reads a YAML configuration from r.
// Missing fields keep their default value; unknown fields are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(ErrInvalidConfig, "could not decode YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration from the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), errors.Wrap(err, "could not open configuration")
	}
	defer func() { _ = f.Close() }()
	cfg, err := LoadConfig(f)
	if err != nil {
		return cfg, errors.Wrapf(err, "in %s", path)
	}
	return cfg, nil
}

// heuristics returns the heuristics c names for pb.
func (c Config) heuristics(pb mdd.Problem) (mdd.MergeSelector, mdd.DeleteSelector, mdd.VariableSelector) {
	var vars mdd.VariableSelector = mdd.SimpleVariableSelector{}
	if c.Variables == "" || c.Variables == HeuristicProblem {
		if p, ok := pb.(VariableSelectorProvider); ok {
			vars = p.VariableSelector()
		}
	}
	return mdd.MinLPMergeSelector{}, mdd.MinLPDeleteSelector{}, vars
}

// A VariableSelectorProvider is a problem that knows a good branching heuristic for itself.
type VariableSelectorProvider interface {
	VariableSelector() mdd.VariableSelector
}
