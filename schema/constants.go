package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Reducer represents a per-window reduction function.
	Reducer string

	// ValueKind represents the type of a recorded field value.
	ValueKind string

	// DatabaseBackend represents the backend used by the point store.
	DatabaseBackend string

	// ChangeStatus represents the review status of a Gerrit change.
	ChangeStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All reducers supported.
const (
	CountReducer Reducer = "count" // default
	SumReducer   Reducer = "sum"
	MeanReducer  Reducer = "mean"
)

// All value kinds supported.
const (
	NumericKind ValueKind = "numeric"
	TextKind    ValueKind = "text"
	TimeKind    ValueKind = "timestamp"
)

// All point store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	InfluxBackend     DatabaseBackend = "influxdb"
	NoneBackend       DatabaseBackend = "none"
)

// All Gerrit change statuses supported.
const (
	NewChange       ChangeStatus = "NEW"
	MergedChange    ChangeStatus = "MERGED"
	AbandonedChange ChangeStatus = "ABANDONED"
)

// Measurement names in the point store.
const (
	CommitDetailsMeasurement = "commit_details"
	CommitsReviewMeasurement = "commits_review"
)

// Field names under the commit_details measurement.
const (
	StatusField      = "status"
	SubmittedOnField = "submitted_on"
	InsertionsField  = "insertions"
	DeletionsField   = "deletions"
)

// Field names under the commits_review measurement.
const (
	MergedCommitsField     = "MergedCommits"
	AverageReviewTimeField = "AverageReviewTime"
	CommentsPerCommitField = "CommentsPerCommit"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidReducers lists all valid reducers.
var ValidReducers = map[Reducer]struct{}{
	CountReducer: {},
	SumReducer:   {},
	MeanReducer:  {},
}

// ValidDatabaseBackends lists all valid point store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	InfluxBackend:     {},
	NoneBackend:       {},
}

// KnownMeasurements lists the measurements gerritlens records.
var KnownMeasurements = map[string]struct{}{
	CommitDetailsMeasurement: {},
	CommitsReviewMeasurement: {},
}

// CommitDetailFields lists the fields recorded under commit_details.
var CommitDetailFields = []string{StatusField, SubmittedOnField, InsertionsField, DeletionsField}

// CommitsReviewFields lists the fields recorded under commits_review.
var CommitsReviewFields = []string{MergedCommitsField, AverageReviewTimeField, CommentsPerCommitField}
