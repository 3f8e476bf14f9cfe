// File: config.go
// Role: functional-options configuration for fixture constructors, adapted
//       from the teacher pack's builder.BuilderOption/builderConfig pair.
// AI-HINT (file):
//   - idFn governs node id generation for Path, Star and Complete (Grid and
//     NestedContainers build their own positional ids); tagFn optionally
//     stamps every generated edge with semantic tags, useful for exercising
//     the aggregation vocabulary (state.ChannelVocabulary) against synthetic
//     topologies.
package fixtures

import (
	"fmt"

	"github.com/hypergraphstate/hypergraphstate/state"
)

// IDFn maps a zero-based index to a deterministic entity id.
type IDFn func(i int) string

// DefaultIDFn renders "n0", "n1", ... so fixture node ids never collide with
// the fixed ids fixture constructors use for their own structural elements
// (e.g. Star's "center").
func DefaultIDFn(i int) string { return fmt.Sprintf("n%d", i) }

// TagFn optionally assigns semantic tags to the i-th edge a constructor
// emits. A nil TagFn (the default) leaves edges untagged.
type TagFn func(i int) []state.Tag

// Option customizes a fixtureConfig before a Constructor runs.
type Option func(cfg *fixtureConfig)

// fixtureConfig holds constructor-wide settings resolved from Options.
type fixtureConfig struct {
	idFn   IDFn
	tagFn  TagFn
	prefix string
}

func newFixtureConfig(opts ...Option) *fixtureConfig {
	cfg := &fixtureConfig{
		idFn:   DefaultIDFn,
		tagFn:  nil,
		prefix: "",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIDScheme overrides the default "n<i>" node id scheme.
func WithIDScheme(idFn IDFn) Option {
	return func(cfg *fixtureConfig) {
		if idFn != nil {
			cfg.idFn = idFn
		}
	}
}

// WithEdgeTags assigns tagFn as the per-edge tag generator.
func WithEdgeTags(tagFn TagFn) Option {
	return func(cfg *fixtureConfig) { cfg.tagFn = tagFn }
}

// WithIDPrefix namespaces every id a Constructor generates, so multiple
// fixtures can be composed into a single Store without id collisions.
func WithIDPrefix(prefix string) Option {
	return func(cfg *fixtureConfig) { cfg.prefix = prefix }
}

func (cfg *fixtureConfig) id(i int) string { return cfg.prefix + cfg.idFn(i) }

func (cfg *fixtureConfig) tags(i int) []state.Tag {
	if cfg.tagFn == nil {
		return nil
	}
	return cfg.tagFn(i)
}
