package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notepilot/internal/llm"
	llmMocks "notepilot/internal/llm/mocks"
	"notepilot/internal/model"
)

const testSource = "NotePilot AI Engine (Gemini 1.5 Flash)"

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		context  string
		question string
		lang     string
		want     string
	}{
		{
			name:     "factual without context is the question",
			command:  model.CommandQueryFactual,
			question: "What is 2+2?",
			want:     "What is 2+2?",
		},
		{
			name:     "factual with context",
			command:  model.CommandQueryFactual,
			context:  "2+2 equals 4.",
			question: "What is 2+2?",
			want:     "Based on the following context, answer the question.\nContext: 2+2 equals 4.\nQuestion: What is 2+2?",
		},
		{
			name:    "summarize",
			command: model.CommandSummarize,
			context: "long text",
			want:    "Summarize the following text: long text",
		},
		{
			name:    "translate",
			command: model.CommandTranslate,
			context: "hello",
			lang:    "fr",
			want:    "Translate the following text to fr: hello",
		},
		{
			name:    "rewrite",
			command: model.CommandRewrite,
			context: "draft",
			want:    "Rewrite and improve the following text: draft",
		},
		{
			name:    "proofread",
			command: model.CommandProofread,
			context: "teh cat",
			want:    "Proofread the following text. Correct spelling and grammar mistakes. Only return the corrected text: teh cat",
		},
		{
			name:     "context is not escaped",
			command:  model.CommandSummarize,
			context:  "{context}\n\"quoted\"",
			question: "ignored",
			want:     "Summarize the following text: {context}\n\"quoted\"",
		},
		{
			name:    "summarize with empty context",
			command: model.CommandSummarize,
			want:    "Summarize the following text: ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPrompt(tt.command, tt.context, tt.question, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt_UnknownCommand(t *testing.T) {
	for _, cmd := range []string{"UNKNOWN_X", "", "summarize"} {
		_, err := BuildPrompt(cmd, "ctx", "q", "en")
		var uce *UnknownCommandError
		require.ErrorAs(t, err, &uce)
		assert.Equal(t, cmd, uce.Command)
		assert.Equal(t, "Unknown command: "+cmd, err.Error())
	}
}

func TestNormalizePrompt(t *testing.T) {
	raw := "\n--- Page 1 (Scanned OCR) ---\nExperirnent - 1\nAim: {x}"
	p := NormalizePrompt(raw)

	assert.True(t, strings.HasSuffix(p, "RAW TEXT:\n"+raw+"\n"))
	for _, h := range []string{`"Experiment - 1"`, `"Aim:"`, `"Program:"`, `"Output:"`, `"Test case:"`, `"Result:"`} {
		assert.Contains(t, p, h)
	}
	assert.Contains(t, p, "(--- Page X ---)")
	assert.Contains(t, p, "'rn' for 'm'")
}

func TestAnalysisService_Normalize(t *testing.T) {
	ctx := context.Background()

	t.Run("returns model output unmodified", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", ctx, NormalizePrompt("raw")).Return("  cleaned\n", nil).Once()
		svc := NewAnalysisService(gen, testSource, nil)

		got, err := svc.Normalize(ctx, "raw")

		require.NoError(t, err)
		assert.Equal(t, "  cleaned\n", got)
		gen.AssertExpectations(t)
	})

	t.Run("error is propagated", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		genErr := &llm.GenerationError{Err: errors.New("quota exceeded")}
		gen.On("Generate", ctx, mock.Anything).Return("", genErr)
		svc := NewAnalysisService(gen, testSource, nil)

		_, err := svc.Normalize(ctx, "raw")

		assert.ErrorIs(t, err, genErr)
	})
}

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		req        model.AnalyzeRequest
		setupMock  func(m *llmMocks.MockGenerator)
		want       *model.AnalyzeResponse
		wantErrMsg string
	}{
		{
			name: "factual question",
			req:  model.AnalyzeRequest{Command: model.CommandQueryFactual, Question: "What is 2+2?", OutputLanguage: "en"},
			setupMock: func(m *llmMocks.MockGenerator) {
				m.On("Generate", ctx, "What is 2+2?").Return("4", nil).Once()
			},
			want: &model.AnalyzeResponse{Command: model.CommandQueryFactual, Answer: "4", Source: testSource, Citation: model.CitationNone},
		},
		{
			name: "generation failure becomes an answer",
			req:  model.AnalyzeRequest{Command: model.CommandSummarize, Text: "abc"},
			setupMock: func(m *llmMocks.MockGenerator) {
				m.On("Generate", ctx, "Summarize the following text: abc").
					Return("", &llm.GenerationError{Model: "gemini", Err: errors.New("429 rate limited")}).Once()
			},
			want: &model.AnalyzeResponse{
				Command:  model.CommandSummarize,
				Answer:   "An error occurred while processing your request: 429 rate limited",
				Source:   model.SourceErrorHandler,
				Citation: model.CitationNone,
			},
		},
		{
			name: "not configured",
			req:  model.AnalyzeRequest{Command: model.CommandRewrite, Text: "x"},
			setupMock: func(m *llmMocks.MockGenerator) {
				m.On("Generate", ctx, mock.Anything).Return("", &llm.GenerationError{Err: llm.ErrNotConfigured}).Once()
			},
			want: &model.AnalyzeResponse{
				Command:  model.CommandRewrite,
				Answer:   "An error occurred while processing your request: " + llm.ErrNotConfigured.Error(),
				Source:   model.SourceErrorHandler,
				Citation: model.CitationNone,
			},
		},
		{
			name:       "unknown command never reaches the model",
			req:        model.AnalyzeRequest{Command: "UNKNOWN_X", Text: "x"},
			setupMock:  func(m *llmMocks.MockGenerator) {},
			wantErrMsg: "Unknown command: UNKNOWN_X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(llmMocks.MockGenerator)
			tt.setupMock(gen)
			svc := NewAnalysisService(gen, testSource, nil)

			got, err := svc.Analyze(ctx, tt.req)

			if tt.wantErrMsg != "" {
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
				gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			gen.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_Analyze_Idempotent(t *testing.T) {
	ctx := context.Background()
	gen := new(llmMocks.MockGenerator)
	gen.On("Generate", ctx, mock.Anything).Return("same answer", nil)
	svc := NewAnalysisService(gen, testSource, nil)
	req := model.AnalyzeRequest{Command: model.CommandTranslate, Text: "hola", OutputLanguage: "en"}

	first, err := svc.Analyze(ctx, req)
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	gen.AssertNumberOfCalls(t, "Generate", 2)
}

func TestAnalysisService_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	gen := new(llmMocks.MockGenerator)
	gen.On("Generate", ctx, "ok").Return("fine", nil)
	gen.On("Generate", ctx, "bad").Return("", errors.New("boom"))
	svc := NewAnalysisService(gen, testSource, metrics)

	_, _ = svc.Analyze(ctx, model.AnalyzeRequest{Command: model.CommandQueryFactual, Question: "ok"})
	_, _ = svc.Analyze(ctx, model.AnalyzeRequest{Command: model.CommandQueryFactual, Question: "bad"})
	_, _ = svc.Analyze(ctx, model.AnalyzeRequest{Command: "NOPE"})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generations.WithLabelValues("analyze", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generations.WithLabelValues("analyze", "error")))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice on one registry must fail")
}
