package service

import (
	"context"
	"errors"
	"fmt"

	"notepilot/internal/llm"
	"notepilot/internal/model"
)

// UnknownCommandError is returned for a command outside the dispatch table.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Command
}

const normalizeTemplate = `
You are an expert at cleaning OCR text from a university lab manual.
The following text is a C language lab manual. It contains digital text, scanned images (OCR), and C code.
It contains many OCR errors.

Your task is to fix all errors while preserving the document structure.

1.  Clean up C code: Fix syntax errors, OCR mistakes (like 'Q' for '0', 'A' for '1', 'rn' for 'm', '¢' for '•').
2.  Preserve all headings: Keep "Experiment - 1", "Aim:", "Program:", "Output:", "Test case:", and "Result:".
3.  **CRITICAL:** Preserve all content *under* these headings, especially the user's test case data (like "13569") in the "Output:" sections.
4.  Preserve the page markers (--- Page X ---).

Do not delete any sections.

RAW TEXT:
%s
`

// NormalizePrompt embeds raw verbatim in the lab-manual cleanup instruction.
func NormalizePrompt(raw string) string {
	return fmt.Sprintf(normalizeTemplate, raw)
}

// BuildPrompt maps a command to its prompt. context and question are inserted
// verbatim. QUERY_FACTUAL without context is checked first and with context
// last, after every other explicit command.
func BuildPrompt(command, context, question, outputLanguage string) (string, error) {
	switch {
	case command == model.CommandQueryFactual && context == "":
		return question, nil
	case command == model.CommandSummarize:
		return "Summarize the following text: " + context, nil
	case command == model.CommandTranslate:
		return fmt.Sprintf("Translate the following text to %s: %s", outputLanguage, context), nil
	case command == model.CommandRewrite:
		return "Rewrite and improve the following text: " + context, nil
	case command == model.CommandProofread:
		return "Proofread the following text. Correct spelling and grammar mistakes. Only return the corrected text: " + context, nil
	case command == model.CommandQueryFactual && context != "":
		return fmt.Sprintf("Based on the following context, answer the question.\nContext: %s\nQuestion: %s", context, question), nil
	default:
		return "", &UnknownCommandError{Command: command}
	}
}

// AnalysisService wraps the two generative use cases.
type AnalysisService interface {
	// Normalize cleans raw extracted text with one generative call. Errors are returned as is.
	Normalize(ctx context.Context, raw string) (string, error)

	// Analyze dispatches a command. Only *UnknownCommandError is returned as an
	// error; generation failures are reported inside the response.
	Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error)
}

type analysisService struct {
	gen     llm.Generator
	source  string
	metrics *Metrics
}

// NewAnalysisService constructs an AnalysisService. source labels successful answers.
func NewAnalysisService(gen llm.Generator, source string, metrics *Metrics) AnalysisService {
	return &analysisService{gen: gen, source: source, metrics: metrics}
}

func (s *analysisService) Normalize(ctx context.Context, raw string) (string, error) {
	text, err := s.gen.Generate(ctx, NormalizePrompt(raw))
	s.metrics.observeGeneration("normalize", err)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *analysisService) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	prompt, err := BuildPrompt(req.Command, req.Text, req.Question, req.OutputLanguage)
	if err != nil {
		return nil, err
	}

	resp := &model.AnalyzeResponse{
		Command:  req.Command,
		Source:   s.source,
		Citation: model.CitationNone,
	}
	answer, err := s.gen.Generate(ctx, prompt)
	s.metrics.observeGeneration("analyze", err)
	if err != nil {
		resp.Answer = "An error occurred while processing your request: " + errorMessage(err)
		resp.Source = model.SourceErrorHandler
		return resp, nil
	}
	resp.Answer = answer
	return resp, nil
}

// errorMessage prefers the provider's own message over our wrapping.
func errorMessage(err error) string {
	var ge *llm.GenerationError
	if errors.As(err, &ge) {
		return ge.Error()
	}
	return err.Error()
}
