package ddl

// Options carries the non-semantic output knobs the emitter consults.
// IndexNameCollision governs what happens when two foreign keys on the same
// table would otherwise produce the same index name: "suffix" (default)
// appends a 1-based occurrence counter from the second occurrence on ("_2"),
// "skip" keeps only the first index and drops the rest.
type Options struct {
	IncludeHeaderComments bool   `yaml:"include_header_comments" mapstructure:"include_header_comments"`
	DefaultVarcharLength  int    `yaml:"default_varchar_length" mapstructure:"default_varchar_length"`
	IndexNameCollision    string `yaml:"index_name_collision" mapstructure:"index_name_collision"` // "suffix" or "skip"
}

// DefaultOptions returns the emitter's defaults: header comments on,
// VARCHAR(255) as the missing-type fallback, and suffixing on index name
// collisions.
func DefaultOptions() Options {
	return Options{
		IncludeHeaderComments: true,
		DefaultVarcharLength:  255,
		IndexNameCollision:    "suffix",
	}
}
