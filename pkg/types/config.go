package types

// IngestConfig holds settings for normalizing instrument and library CSVs.
type IngestConfig struct {
	// PeaksPath is the instrument peak table CSV.
	PeaksPath string `json:"peaks_path" yaml:"peaks_path"`

	// LibraryPath is the reference compound library CSV.
	LibraryPath string `json:"library_path" yaml:"library_path"`

	// RTRefPath is the optional retention-time reference CSV.
	RTRefPath string `json:"rt_ref_path,omitempty" yaml:"rt_ref_path,omitempty"`
}

// LibraryConfig holds settings for the SQLite compound library store.
type LibraryConfig struct {
	// DBPath is the SQLite database file (e.g. "data/library.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ReportConfig holds settings for rendering scored results.
type ReportConfig struct {
	// Format selects the output rendering: table, csv, or json.
	Format string `json:"format" yaml:"format"`

	// OutPath writes results to a file instead of stdout when set.
	OutPath string `json:"out_path,omitempty" yaml:"out_path,omitempty"`

	// RunFilePath saves the full run (config, summary, results) as YAML when set.
	RunFilePath string `json:"run_file_path,omitempty" yaml:"run_file_path,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Ingest  IngestConfig  `json:"ingest" yaml:"ingest"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Report  ReportConfig  `json:"report" yaml:"report"`

	// Keywords is the species-context keyword list used by the
	// plausibility term (e.g. "terpene", "phenolic").
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}
