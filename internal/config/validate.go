package config

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/pawswipe/internal/swipe"
)

//go:embed schema.cue
var schemaSource string

// Issue is a configuration problem. It is the same type swipe.Config.Check reports.
type Issue = swipe.Issue

// positiveFields lists the #Bounds paths in report order.
var positiveFields = []string{
	"engageThreshold",
	"intentThreshold",
	"commitThreshold",
	"velocityEscape",
	"springConfig.stiffness",
	"springConfig.damping",
	"springConfig.mass",
	"overscrollClamp",
}

// orderingFields lists the adjacent pairs checked against #Ordered, in
// report order.
var orderingFields = []struct {
	path  string
	below string
}{
	{"intentThreshold", "engageThreshold"},
	{"commitThreshold", "intentThreshold"},
}

// schema is compiled once. A cue.Context is not safe for concurrent use,
// so validation runs under mu.
var (
	mu       sync.Mutex
	ctx      *cue.Context
	bounds   cue.Value
	ordering cue.Value
	initErr  error
	initOnce sync.Once
)

func loadSchema() error {
	initOnce.Do(func() {
		ctx = cuecontext.New()
		schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := schema.Err(); err != nil {
			initErr = fmt.Errorf("compiling schema: %w", err)
			return
		}
		bounds = schema.LookupPath(cue.ParsePath("#Bounds"))
		ordering = schema.LookupPath(cue.ParsePath("#Ordered"))
		if !bounds.Exists() || !ordering.Exists() {
			initErr = fmt.Errorf("schema is missing #Bounds or #Ordered")
		}
	})
	return initErr
}

// Validate checks cfg against the embedded CUE schema. It reports the same
// fields and severities as cfg.Check, in the same order.
func Validate(cfg swipe.Config) ([]Issue, error) {
	if err := loadSchema(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	v := ctx.Encode(cfg)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	issues := []Issue{}
	for _, field := range positiveFields {
		path := cue.ParsePath(field)
		got := v.LookupPath(path)
		if err := bounds.LookupPath(path).Unify(got).Validate(cue.Concrete(true)); err != nil {
			issues = append(issues, Issue{
				Field:    field,
				Message:  fmt.Sprintf("must be positive, got %v", valueString(got)),
				Severity: swipe.SeverityError,
			})
		}
	}

	for _, f := range orderingFields {
		hi := v.LookupPath(cue.ParsePath(f.path))
		lo := v.LookupPath(cue.ParsePath(f.below))
		pair := ordering.
			FillPath(cue.ParsePath("lo"), lo).
			FillPath(cue.ParsePath("hi"), hi)
		if err := pair.Validate(cue.Concrete(true)); err != nil {
			issues = append(issues, Issue{
				Field: f.path,
				Message: fmt.Sprintf("%s %s is below %s %s",
					f.path, valueString(hi), f.below, valueString(lo)),
				Severity: swipe.SeverityWarning,
			})
		}
	}
	return issues, nil
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == swipe.SeverityError {
			return true
		}
	}
	return false
}

func valueString(v cue.Value) string {
	f, err := v.Float64()
	if err != nil {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%v", f)
}
