package store

import "time"

// File is a TrackedFile row.
type File struct {
	ID          int64     `json:"id"`
	Path        string    `json:"path"`
	Language    string    `json:"language"`
	LineCount   int       `json:"line_count"`
	Hash        string    `json:"hash"`
	CommitCount int       `json:"commit_count"`
	ChurnScore  float64   `json:"churn_score"`
	Generation  int64     `json:"-"`
	LastIndexed time.Time `json:"last_indexed"`
}

// Symbol kinds named by spec.md §3.
const (
	KindFunction  = "function"
	KindMethod    = "method"
	KindClass     = "class"
	KindStruct    = "struct"
	KindEnum      = "enum"
	KindInterface = "interface"
	KindType      = "type"
	KindTrait     = "trait"
	KindModule    = "module"
	KindImpl      = "impl"
	KindDecorator = "decorator"
	KindConstant  = "constant"
	KindVariable  = "variable"
)

// Symbol is a Symbol row. Signature is the single-line normalized
// declaration text; StartLine/EndLine are 1-based and inclusive.
type Symbol struct {
	ID        int64
	FileID    int64
	Name      string
	Kind      string
	Signature string
	StartLine int
	EndLine   int
}

// Dependency is a Dependency edge row. TargetFileID is nil until the raw
// import is resolved against a file in the project.
type Dependency struct {
	ID           int64
	SourceFileID int64
	TargetFileID *int64
	RawImport    string
	Resolved     bool
}

// Decision kinds named by spec.md §3.
const (
	DecisionFeat     = "feat"
	DecisionFix      = "fix"
	DecisionRefactor = "refactor"
	DecisionPerf     = "perf"
	DecisionBreaking = "breaking"
	DecisionNote     = "note"
)

// Decision sources named by spec.md §3.
const (
	SourceCommit = "commit"
	SourceManual = "manual"
)

// Decision is a Decision row.
type Decision struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Reference *string   `json:"reference,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Body      *string   `json:"body,omitempty"`
}

// KnowledgeNote is a KnowledgeNote row.
type KnowledgeNote struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Body          string    `json:"body"`
	RelatedFileID *int64    `json:"related_file_id,omitempty"`
}
