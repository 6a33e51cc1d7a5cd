package rating

import "github.com/okian/pele/internal/domain/model"

// Option applies a configuration option to a Compute call.
type Option func(*options)

type options struct {
	groupBy     []string
	standardize bool
	scorer      Scorer
	reducers    map[string]Reducer
}

func newOptions(opts ...Option) *options {
	o := &options{
		groupBy:     []string{model.ColPlayerID},
		standardize: true,
		scorer:      NewFixedScorer(DefaultProfile, DefaultWeights()),
		reducers:    DefaultReducers(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithGroupBy sets the aggregation key columns. No columns means row-level
// output.
func WithGroupBy(cols ...string) Option {
	return func(o *options) {
		o.groupBy = append([]string(nil), cols...)
	}
}

// WithStandardize toggles the 50±10 Pele100 column.
func WithStandardize(enabled bool) Option {
	return func(o *options) {
		o.standardize = enabled
	}
}

// WithScorer selects the component scorer.
func WithScorer(s Scorer) Option {
	return func(o *options) {
		if s != nil {
			o.scorer = s
		}
	}
}

// WithReducer overrides how an identity column outside the group key is
// resolved for each group.
func WithReducer(col string, r Reducer) Option {
	return func(o *options) {
		if r != nil {
			o.reducers[col] = r
		}
	}
}
