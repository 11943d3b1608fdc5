package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// GenerationSystemPrompt is the system instruction for question generation.
func (pb *PromptBuilder) GenerationSystemPrompt() string {
	return `You are an expert technical interviewer and content generator. ` +
		`Produce high-quality interview questions and reference answers for the specified job description. ` +
		`Output MUST be valid JSON: an array of objects. Each object must contain keys: ` +
		`'question' (string), 'answer' (string), 'keywords' (array of short strings). ` +
		`Do NOT include any other keys or explanatory text outside the JSON array.`
}

// BuildGenerationPrompt creates the user prompt for question generation.
// Roughly 40% of the items should be coding-oriented, the remainder split
// across theory, practical and debugging.
func (pb *PromptBuilder) BuildGenerationPrompt(jobDescription string, nQuestions int) string {
	return fmt.Sprintf(`Generate exactly %d interview question items for the following job description.

JOB DESCRIPTION:
%s

Requirements:
- About 40%% of the questions must be coding-oriented (short coding concepts, code reading, algorithms).
- The rest should mix theory, practical application and debugging scenarios.
- Reference answers should be concise (1-4 short paragraphs).
- Keywords should be 2-6 important terms for automatic matching.

Return only the JSON array of %d objects with keys question, answer, keywords.`,
		nQuestions, jobDescription, nQuestions)
}

// BuildStrictRetryPrompt creates the fallback prompt used after the first
// generation response failed to parse.
func (pb *PromptBuilder) BuildStrictRetryPrompt(jobDescription string, nQuestions int) string {
	return fmt.Sprintf(`You previously returned an invalid format. Return ONLY the JSON array, nothing else.
The array must contain exactly %d items with keys question, answer, keywords.

JOB DESCRIPTION:
%s`,
		nQuestions, jobDescription)
}

// JudgeSystemPrompt is the system instruction for answer judging.
func (pb *PromptBuilder) JudgeSystemPrompt() string {
	return `You are a strict technical interviewer grading a candidate's free-text answer ` +
		`against a reference answer. Respond ONLY with a JSON object.`
}

// BuildJudgePrompt creates the prompt that scores one candidate answer.
// The relevance gate comes first: a blank, off-topic or placeholder answer
// must score 0 instead of being graded for quality.
func (pb *PromptBuilder) BuildJudgePrompt(questionText, referenceAnswer, answerText string, keywords []string) string {
	keywordLine := "none"
	if len(keywords) > 0 {
		keywordLine = fmt.Sprintf("%v", keywords)
	}

	return fmt.Sprintf(`QUESTION:
%s

REFERENCE ANSWER:
%s

IMPORTANT KEYWORDS: %s

CANDIDATE ANSWER:
%s

First decide whether the candidate answer is a relevant attempt at this question.
A blank, off-topic, or placeholder answer (e.g. "I don't know", "asdf") is NOT a relevant attempt and must receive a score of 0.

Then grade the answer from 0 to 100 against the reference answer, considering correctness, coverage of the keywords, and clarity.

Return your response in the following JSON format:
{
  "is_relevant": <true|false>,
  "score": <integer 0-100>,
  "feedback": {
    "what_was_good": "<1-2 sentences>",
    "what_was_missing": "<1-2 sentences>",
    "technical_accuracy": "<1-2 sentences>",
    "clarity_and_communication": "<1-2 sentences>"
  }
}`,
		questionText, referenceAnswer, keywordLine, answerText)
}

// MatchSystemPrompt is the system instruction for resume-vs-job matching.
func (pb *PromptBuilder) MatchSystemPrompt() string {
	return `You are an expert technical recruiter assessing how well a resume matches a job description. ` +
		`Respond ONLY with a JSON object.`
}

// BuildMatchPrompt creates the prompt for the resume/job match report.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

Assess the candidate's fit for this role.

Return your response in the following JSON format:
{
  "score": <integer 0-100 match score>,
  "summary": "<3-5 sentence overall assessment>",
  "strengths": ["<specific strength>", ...],
  "gaps": ["<specific gap>", ...]
}

Be objective. Reference concrete items from the resume to justify the score.`,
		jobDescription, resumeText)
}
