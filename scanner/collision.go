package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"iconmaker/config"

	"github.com/pkg/errors"
)

var (
	// ErrCollisionSkipped marks a source whose output name was already
	// claimed earlier in the run under the skip policy.
	ErrCollisionSkipped = errors.New("output name already produced in this run")

	// ErrOutputCollision is returned under the error policy.
	ErrOutputCollision = errors.New("output name collision")
)

// CollisionResolver tracks which output paths a run has claimed
type CollisionResolver struct {
	policy  config.CollisionPolicy
	claimed map[string]string
}

// NewCollisionResolver returns a resolver with an empty claim table
func NewCollisionResolver(policy config.CollisionPolicy) *CollisionResolver {
	if policy == "" {
		policy = config.CollisionOverwrite
	}
	return &CollisionResolver{
		policy:  policy,
		claimed: make(map[string]string),
	}
}

// Resolve returns the output path input should be written to. The
// returned path is claimed for input.
func (r *CollisionResolver) Resolve(input, requested string) (string, error) {
	owner, taken := r.claimed[requested]
	if !taken || owner == input {
		r.claimed[requested] = input
		return requested, nil
	}

	switch r.policy {
	case config.CollisionSkip:
		return "", errors.Wrapf(ErrCollisionSkipped, "%s is produced by %s", filepath.Base(requested), filepath.Base(owner))
	case config.CollisionError:
		return "", errors.Wrapf(ErrOutputCollision, "%s and %s both map to %s", filepath.Base(owner), filepath.Base(input), filepath.Base(requested))
	case config.CollisionRename:
		ext := filepath.Ext(requested)
		base := strings.TrimSuffix(requested, ext)
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s - dup%d%s", base, n, ext)
			if _, used := r.claimed[candidate]; !used {
				r.claimed[candidate] = input
				return candidate, nil
			}
		}
	default:
		r.claimed[requested] = input
		return requested, nil
	}
}

// Release forgets a claim, used when the write for it failed
func (r *CollisionResolver) Release(output string) {
	delete(r.claimed, output)
}

// isOutput reports whether path was written as an output in this run
func (r *CollisionResolver) isOutput(path string) bool {
	_, ok := r.claimed[filepath.Clean(path)]
	return ok
}
