package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchParsesFullReport(t *testing.T) {
	gemini := &stubGemini{responses: []string{"```json\n" + `{
		"score": 78,
		"summary": "Strong backend background with limited Go exposure.",
		"strengths": ["Distributed systems", "API design"],
		"gaps": ["No production Go"]
	}` + "\n```"}}
	matcher := NewMatcherService(gemini)

	report := matcher.Match(context.Background(), "resume text", "job description")
	require.NotNil(t, report)
	assert.Equal(t, 78, report.Score)
	assert.Equal(t, "Strong backend background with limited Go exposure.", report.Summary)
	assert.Equal(t, []string{"Distributed systems", "API design"}, report.Strengths)
	assert.Equal(t, []string{"No production Go"}, report.Gaps)
}

func TestMatchTransportFailureReturnsNil(t *testing.T) {
	gemini := &stubGemini{errs: []error{errors.New("upstream unavailable")}}
	matcher := NewMatcherService(gemini)

	assert.Nil(t, matcher.Match(context.Background(), "resume", "job"))
}

func TestMatchUnparseableResponseReturnsNil(t *testing.T) {
	gemini := &stubGemini{responses: []string{"no structured payload here"}}
	matcher := NewMatcherService(gemini)

	assert.Nil(t, matcher.Match(context.Background(), "resume", "job"))
}

func TestMatchDefaultsMissingFields(t *testing.T) {
	gemini := &stubGemini{responses: []string{`{"score": 40}`}}
	matcher := NewMatcherService(gemini)

	report := matcher.Match(context.Background(), "resume", "job")
	require.NotNil(t, report)
	assert.Equal(t, 40, report.Score)
	assert.Equal(t, "", report.Summary)
	assert.NotNil(t, report.Strengths)
	assert.Empty(t, report.Strengths)
	assert.NotNil(t, report.Gaps)
	assert.Empty(t, report.Gaps)
}

func TestMatchClampsScore(t *testing.T) {
	gemini := &stubGemini{responses: []string{`{"score": 130, "summary": "s"}`}}
	matcher := NewMatcherService(gemini)

	report := matcher.Match(context.Background(), "resume", "job")
	require.NotNil(t, report)
	assert.Equal(t, 100, report.Score)
}
