package model

// Commands accepted by the analyze endpoint.
const (
	CommandQueryFactual = "QUERY_FACTUAL"
	CommandSummarize    = "SUMMARIZE"
	CommandTranslate    = "TRANSLATE"
	CommandRewrite      = "REWRITE"
	CommandProofread    = "PROOFREAD"
)

// CitationNone is the only citation value currently produced.
const CitationNone = "N/A"

// SourceErrorHandler replaces the answer source when the request failed downstream.
const SourceErrorHandler = "Error Handler"

// UploadStatusSuccess is the status reported for a processed upload.
const UploadStatusSuccess = "success"

// AnalyzeRequest is the body of POST /api/analyze. Every field is optional.
type AnalyzeRequest struct {
	Text           string `json:"text"`
	Question       string `json:"question"`
	Command        string `json:"command"`
	OutputLanguage string `json:"output_language"`
}

// DefaultAnalyzeRequest returns a request carrying the documented defaults.
func DefaultAnalyzeRequest() AnalyzeRequest {
	return AnalyzeRequest{Command: CommandQueryFactual, OutputLanguage: "en"}
}

// AnalyzeResponse is returned by POST /api/analyze, including on downstream failure.
type AnalyzeResponse struct {
	Command  string `json:"command"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// UploadResult is returned by POST /api/upload_and_analyze. It is never persisted.
type UploadResult struct {
	Status        string `json:"status"`
	Filename      string `json:"filename"`
	CleanedText   string `json:"ocr_text"`
	AnalysisReady string `json:"analysis_ready"`
}
