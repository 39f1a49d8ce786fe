// Package output provides formatters for displaying tidy scan reports
// and run summaries in various formats (pretty, plain, json).
//
// The package uses a registry pattern so formatter implementations can
// be selected at runtime by name:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.FormatPlan(&buf, report); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

// Report is the complete output data for formatting. Plan is always
// present; Summary is nil until the move phase has run (a dry run or a
// declined confirmation never produces one).
type Report struct {
	// Plan is the scan result being reported.
	Plan *types.Plan `json:"plan"`

	// Summary holds the move-phase results, if the run got that far.
	Summary *types.Summary `json:"summary,omitempty"`

	// Cancelled indicates the user declined the confirmation prompt.
	Cancelled bool `json:"cancelled,omitempty"`

	// DryRun indicates the run stopped after reporting by request.
	DryRun bool `json:"dry_run,omitempty"`
}

// Formatter is the interface that all output formatters implement.
// FormatPlan renders the pre-confirmation scan report; FormatResult
// renders the end of the run (tally, cancellation, or dry-run notice).
// Structured formatters may emit everything from FormatResult so the
// run produces a single document.
type Formatter interface {
	// FormatPlan writes the scan report to the buffer.
	FormatPlan(w *bytes.Buffer, r *Report) error

	// FormatResult writes the run outcome to the buffer.
	FormatResult(w *bytes.Buffer, r *Report) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry, replacing any
// existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
