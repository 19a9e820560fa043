package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherence-eval/coherence/infrastructure/export"
	"github.com/coherence-eval/coherence/infrastructure/modelout"
	"github.com/coherence-eval/coherence/internal/domain"
)

const validInput = "My manager and I keep disagreeing about the project deadline."

const validResponse = `{
	"scores": {
		"continuity": 0.8, "differentiation": 0.7, "contextual_fit": 0.6,
		"accountability": 0.5, "reflexivity": 0.4
	},
	"explanations": {"continuity": "Your account stays consistent."},
	"summary": "Your situation is moderately coherent.",
	"recommendations": ["Agree on the deadline in writing."],
	"clarifying_questions": []
}`

// fakeClient scripts completion responses for session tests.
type fakeClient struct {
	response string
	err      error
	prompts  []string
	options  []map[string]any
}

func (f *fakeClient) Complete(_ context.Context, prompt string, options map[string]any) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, options)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel() string { return "fake-model" }

// fakeProfiles serves a fixed rubric or a scripted failure.
type fakeProfiles struct {
	profile domain.Profile
	err     error
}

func (f *fakeProfiles) Load(context.Context) (domain.Profile, error) {
	if f.err != nil {
		return domain.Profile{}, f.err
	}
	return f.profile, nil
}

func testProfile() domain.Profile {
	dims := make(map[domain.Dimension]domain.DimensionProfile, len(domain.Dimensions))
	for _, dim := range domain.Dimensions {
		dims[dim] = domain.DimensionProfile{
			Description:     "What " + string(dim) + " measures.",
			MarkersPositive: []string{"clear signal"},
			MarkersNegative: []string{"muddled signal"},
		}
	}
	return domain.Profile{Dimensions: dims}
}

func newTestSession(client *fakeClient) *Session {
	return NewSession(client, &fakeProfiles{profile: testProfile()}, Config{})
}

func TestSessionStartsIdle(t *testing.T) {
	session := newTestSession(&fakeClient{})
	assert.Equal(t, StateIdle, session.State())

	_, ok := session.LastResult()
	assert.False(t, ok)
}

func TestEvaluateSuccess(t *testing.T) {
	client := &fakeClient{response: validResponse}
	session := newTestSession(client)

	result, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	assert.Equal(t, StateRendered, session.State())
	assert.Equal(t, "Your situation is moderately coherent.", result.Summary)

	score, ok := result.Score(domain.DimContinuity)
	require.True(t, ok)
	assert.InDelta(t, 0.8, score, 1e-9)

	held, ok := session.LastResult()
	require.True(t, ok)
	assert.Equal(t, result, held)

	// The prompt carries the rubric and the user's input.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "relational coherence evaluator")
	assert.Contains(t, client.prompts[0], validInput)

	// Requests ask for JSON at the default temperature.
	require.Len(t, client.options, 1)
	assert.Equal(t, 0.2, client.options[0]["temperature"])
	assert.Equal(t, "json_object", client.options[0]["response_format"])
}

func TestEvaluateShortInputLeavesStateAlone(t *testing.T) {
	client := &fakeClient{response: validResponse}
	session := newTestSession(client)

	// Render a result first.
	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	// Whitespace padding does not rescue short input.
	_, err = session.Evaluate(context.Background(), "   too short   \n\t")
	require.ErrorIs(t, err, ErrInputTooShort)

	// The rendered result and state survive the rejection.
	assert.Equal(t, StateRendered, session.State())
	_, ok := session.LastResult()
	assert.True(t, ok)
	assert.Len(t, client.prompts, 1)
}

func TestEvaluateProfileFailureKeepsResult(t *testing.T) {
	client := &fakeClient{response: validResponse}
	profiles := &fakeProfiles{profile: testProfile()}
	session := NewSession(client, profiles, Config{})

	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	profiles.err = errors.New("file corrupted")
	_, err = session.Evaluate(context.Background(), validInput)

	var profileErr *ProfileError
	require.ErrorAs(t, err, &profileErr)

	// The failure happened before the evaluation started.
	assert.Equal(t, StateRendered, session.State())
	_, ok := session.LastResult()
	assert.True(t, ok)
}

func TestEvaluateTransportFailureClearsResult(t *testing.T) {
	client := &fakeClient{response: validResponse}
	session := newTestSession(client)

	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	client.err = errors.New("connection refused")
	_, err = session.Evaluate(context.Background(), validInput)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)

	assert.Equal(t, StateFailed, session.State())
	_, ok := session.LastResult()
	assert.False(t, ok)
}

func TestEvaluateParseFailureClearsResult(t *testing.T) {
	client := &fakeClient{response: validResponse}
	session := newTestSession(client)

	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	client.response = "I am not JSON, sorry."
	_, err = session.Evaluate(context.Background(), validInput)

	var parseErr *modelout.ParseError
	require.ErrorAs(t, err, &parseErr)

	assert.Equal(t, StateFailed, session.State())
	_, ok := session.LastResult()
	assert.False(t, ok)
}

func TestEvaluateAcceptsFencedResponse(t *testing.T) {
	client := &fakeClient{response: "```json\n" + validResponse + "\n```"}
	session := newTestSession(client)

	result, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)
	assert.Equal(t, "Your situation is moderately coherent.", result.Summary)
}

func TestExportRequiresRenderedResult(t *testing.T) {
	session := newTestSession(&fakeClient{response: validResponse})

	_, err := session.Export(export.FormatText, time.Now())
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, format := range []export.Format{export.FormatText, export.FormatMarkdown, export.FormatPDF} {
		doc, err := session.Export(format, now)
		require.NoError(t, err)
		assert.NotEmpty(t, doc.Data)
		assert.True(t, strings.HasPrefix(doc.Filename, "coherence-evaluation-"))
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	session := newTestSession(&fakeClient{response: validResponse})

	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	_, err = session.Export(export.Format("docx"), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestExportUnavailableAfterFailure(t *testing.T) {
	client := &fakeClient{response: validResponse}
	session := newTestSession(client)

	_, err := session.Evaluate(context.Background(), validInput)
	require.NoError(t, err)

	client.err = errors.New("boom")
	_, _ = session.Evaluate(context.Background(), validInput)

	_, err = session.Export(export.FormatText, time.Now())
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "evaluating", StateEvaluating.String())
	assert.Equal(t, "rendered", StateRendered.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
