// internal/importer/collision.go
package importer

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// CollisionPolicy decides what happens when a placement is already taken,
// either by a file in the output tree or by an earlier entry of the same run.
type CollisionPolicy string

const (
	// CollisionSuffix appends _1, _2, ... before the extension.
	CollisionSuffix CollisionPolicy = "suffix"
	// CollisionSkip leaves the existing file and drops the entry.
	CollisionSkip CollisionPolicy = "skip"
	// CollisionOverwrite replaces files that existed before the run.
	// Entries of the same run never overwrite each other; they get a suffix.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// CollisionPolicies lists the valid policies.
func CollisionPolicies() []CollisionPolicy {
	return []CollisionPolicy{CollisionSuffix, CollisionSkip, CollisionOverwrite}
}

// ParseCollisionPolicy parses a policy name. Empty means CollisionSuffix.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CollisionSuffix, nil
	case CollisionSuffix, CollisionSkip, CollisionOverwrite:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCollisionPolicy, s)
	}
}

// maxSuffix bounds the suffix search.
const maxSuffix = 10000

// claim is the outcome of reserving a placement.
type claim struct {
	// Rel is the final slash-separated path relative to the output root.
	Rel string
	// Collided is set when Rel differs from the requested path or replaces
	// an existing file.
	Collided bool
	// Skip is set when the policy drops the entry.
	Skip bool
	// Replace is set when the existing file must be overwritten.
	Replace bool
}

// claims tracks the destinations reserved by one run so a dry run reaches the
// same decisions as a real one.
type claims struct {
	root   string
	policy CollisionPolicy
	taken  map[string]bool
}

func newClaims(root string, policy CollisionPolicy) *claims {
	return &claims{root: root, policy: policy, taken: make(map[string]bool)}
}

// exists reports whether rel is on disk or reserved earlier in the run.
func (c *claims) exists(rel string) (onDisk, claimed bool) {
	if c.taken[rel] {
		return false, true
	}
	p, err := SafeJoin(c.root, rel)
	if err != nil {
		return false, false
	}
	_, err = os.Lstat(p)
	return err == nil, false
}

// reserve picks the destination for rel according to the policy.
func (c *claims) reserve(rel string) (claim, error) {
	onDisk, claimed := c.exists(rel)
	if !onDisk && !claimed {
		c.taken[rel] = true
		return claim{Rel: rel}, nil
	}

	switch {
	case c.policy == CollisionSkip:
		return claim{Rel: rel, Collided: true, Skip: true}, nil
	case c.policy == CollisionOverwrite && onDisk:
		c.taken[rel] = true
		return claim{Rel: rel, Collided: true, Replace: true}, nil
	}

	dir, name := path.Split(rel)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxSuffix; i++ {
		candidate := dir + fmt.Sprintf("%s_%d%s", stem, i, ext)
		if d, cl := c.exists(candidate); !d && !cl {
			c.taken[candidate] = true
			return claim{Rel: candidate, Collided: true}, nil
		}
	}
	return claim{}, fmt.Errorf("%w: no free name for %s", ErrDestinationExists, rel)
}
