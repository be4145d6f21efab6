package organizer

import (
	"strings"

	"github.com/vmunix/takeoutsort/internal/metadata"
)

// Rule names, as used in configuration.
const (
	RuleDSLRCamera           = "dslr-camera"
	RuleLightroomSoftware    = "lightroom-software"
	RuleGoogleMix            = "google-mix"
	RuleEditedOriginalExists = "edited-original-exists"
)

// RuleNames lists every built-in rule in evaluation order.
func RuleNames() []string {
	return []string{RuleDSLRCamera, RuleLightroomSoftware, RuleGoogleMix, RuleEditedOriginalExists}
}

// Candidate is what a rule sees: the file's name, its metadata and the
// batch's filename set.
type Candidate struct {
	Name     string
	Metadata *metadata.Metadata
	Names    *FilenameSet
}

// Rule is a named predicate. When Match returns true the file is skipped
// with Reason.
type Rule struct {
	Name   string
	Reason Reason
	Match  func(c Candidate) bool
}

// RuleOptions tune the built-in rules. Empty lists use the defaults.
type RuleOptions struct {
	// DSLRMakes are camera make/model substrings (case-insensitive) of
	// cameras whose photos are organized outside Google Photos.
	DSLRMakes []string

	// SoftwareMarkers are Software tag substrings (case-insensitive) of
	// tools whose exports are organized elsewhere.
	SoftwareMarkers []string

	// EditedSuffixes are the edited-copy suffixes.
	EditedSuffixes []string
}

// Defaults for RuleOptions.
var (
	DefaultDSLRMakes       = []string{"NIKON"}
	DefaultSoftwareMarkers = []string{"lightroom"}
)

func (o RuleOptions) withDefaults() RuleOptions {
	if len(o.DSLRMakes) == 0 {
		o.DSLRMakes = DefaultDSLRMakes
	}
	if len(o.SoftwareMarkers) == 0 {
		o.SoftwareMarkers = DefaultSoftwareMarkers
	}
	if len(o.EditedSuffixes) == 0 {
		o.EditedSuffixes = DefaultEditedSuffixes
	}
	return o
}

// Rules returns the built-in rules in evaluation order.
func Rules(opts RuleOptions) []Rule {
	opts = opts.withDefaults()
	return []Rule{
		{
			Name:   RuleDSLRCamera,
			Reason: ReasonDSLRCamera,
			Match: func(c Candidate) bool {
				if c.Metadata == nil {
					return false
				}
				return containsAnyFold(c.Metadata.Make, opts.DSLRMakes) ||
					containsAnyFold(c.Metadata.Model, opts.DSLRMakes)
			},
		},
		{
			Name:   RuleLightroomSoftware,
			Reason: ReasonLightroomSoftware,
			Match: func(c Candidate) bool {
				return c.Metadata != nil && containsAnyFold(c.Metadata.Software, opts.SoftwareMarkers)
			},
		},
		{
			Name:   RuleGoogleMix,
			Reason: ReasonGoogleMix,
			Match: func(c Candidate) bool {
				return isMix(c.Name)
			},
		},
		{
			Name:   RuleEditedOriginalExists,
			Reason: ReasonEditedOriginalExists,
			Match: func(c Candidate) bool {
				original, ok := EditedOriginal(c.Name, opts.EditedSuffixes)
				return ok && c.Names.Contains(original)
			},
		},
	}
}

// SelectRules returns the built-in rules whose names are listed, keeping
// evaluation order. Unknown names are ignored; config validation rejects them.
func SelectRules(names []string, opts RuleOptions) []Rule {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var selected []Rule
	for _, r := range Rules(opts) {
		if want[r.Name] {
			selected = append(selected, r)
		}
	}
	return selected
}

// Classifier evaluates an ordered list of rules. The first matching rule
// decides; a file no rule matches is kept.
type Classifier struct {
	rules          []Rule
	editedSuffixes []string
}

// NewClassifier creates a classifier over rules.
// Pass Rules(RuleOptions{}) for the default policy.
func NewClassifier(rules []Rule, opts RuleOptions) *Classifier {
	return &Classifier{
		rules:          rules,
		editedSuffixes: opts.withDefaults().EditedSuffixes,
	}
}

// DefaultClassifier returns a classifier with every built-in rule.
func DefaultClassifier() *Classifier {
	return NewClassifier(Rules(RuleOptions{}), RuleOptions{})
}

// Rules returns the classifier's rule names in order.
func (c *Classifier) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Classify decides whether entry is kept. With filterEnabled false every
// file is kept and no rule is evaluated.
func (c *Classifier) Classify(entry Entry, names *FilenameSet, filterEnabled bool) Decision {
	if !filterEnabled {
		return Keep()
	}
	cand := Candidate{Name: entry.Name(), Metadata: entry.Metadata, Names: names}
	for _, r := range c.rules {
		if r.Match(cand) {
			return Skip(r.Reason)
		}
	}
	return Keep()
}

// isOrphanedEdit reports whether entry is an edited copy whose original is
// not part of the batch.
func (c *Classifier) isOrphanedEdit(entry Entry, names *FilenameSet) bool {
	original, ok := EditedOriginal(entry.Name(), c.editedSuffixes)
	return ok && !names.Contains(original)
}

// Classify applies the default rules.
func Classify(entry Entry, names *FilenameSet, filterEnabled bool) Decision {
	return DefaultClassifier().Classify(entry, names, filterEnabled)
}

func containsAnyFold(s string, needles []string) bool {
	if s == "" {
		return false
	}
	upper := strings.ToUpper(s)
	for _, n := range needles {
		if n != "" && strings.Contains(upper, strings.ToUpper(n)) {
			return true
		}
	}
	return false
}
