package match

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

type fakeProvider struct {
	calls   int
	results []models.AnalysisResult
	err     error
}

func (f *fakeProvider) Analyze(ctx context.Context, resumeText, jobText string) (models.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return models.AnalysisResult{}, f.err
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res, nil
}

func (f *fakeProvider) Close() error { return nil }

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

const (
	sampleResume = "Ana Souza\nEngenheira de software com cinco anos de experiência em Go e APIs REST."
	sampleJob    = "Vaga para pessoa desenvolvedora backend. Requisitos: Go, Docker, Kubernetes, PostgreSQL e mensageria."
)

func TestAnalyzeRejectsEmptyInputsBeforeProviderCall(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 50}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	_, err := o.Analyze(context.Background(), "u1", "", sampleJob)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = o.Analyze(context.Background(), "u1", sampleResume, "   ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	assert.Zero(t, p.calls, "invalid input must not reach the provider")
}

func TestAnalyzeRejectsNearDuplicateBeforeProviderCall(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 50}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	// pasting the resume as the job, with different casing and spacing
	job := "  " + sampleResume + "  "
	_, err := o.Analyze(context.Background(), "u1", sampleResume, job)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Zero(t, p.calls)
}

func TestAnalyzeFirstRunHasNoImprovement(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 60}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	out, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)

	assert.Equal(t, 60, out.Score)
	assert.Nil(t, out.Improvement)
	assert.False(t, out.ShowOptimizedView)
	assert.Equal(t, 1, p.calls)
}

func TestAnalyzeRepeatTracksImprovement(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 60}, {Score: 82}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	_, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)

	out, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)

	require.NotNil(t, out.Improvement)
	assert.Equal(t, 60, out.Improvement.PreviousScore)
	assert.Equal(t, 82, out.Improvement.CurrentScore)
	assert.Equal(t, 22, out.Improvement.Improvement)
	assert.Equal(t, 2, out.Improvement.AnalysisCount)
	assert.True(t, out.ShowOptimizedView, "second analysis at 82 unlocks the optimized view")
}

func TestAnalyzeOptimizedViewNeedsScore(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 60}, {Score: 70}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	_, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)
	out, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)

	assert.False(t, out.ShowOptimizedView, "70 is below the optimized-view threshold")
}

func TestAnalyzeHistoryIsPerUser(t *testing.T) {
	p := &fakeProvider{results: []models.AnalysisResult{{Score: 60}, {Score: 80}}}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	_, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	require.NoError(t, err)

	out, err := o.Analyze(context.Background(), "u2", sampleResume, sampleJob)
	require.NoError(t, err)
	assert.Nil(t, out.Improvement, "another user's history must not leak")
}

func TestAnalyzeProviderErrorPassesThrough(t *testing.T) {
	p := &fakeProvider{err: utils.E(utils.CodeRateLimited, "fake", "slow down", nil)}
	o := NewOrchestrator(p, newMemCache(), testLogger())

	_, err := o.Analyze(context.Background(), "u1", sampleResume, sampleJob)
	assert.True(t, utils.IsCode(err, utils.CodeRateLimited))
}

func TestJobHashNormalization(t *testing.T) {
	h1 := JobHash("Vaga Backend Go\n\nRequisitos: Docker")
	h2 := JobHash("  vaga   BACKEND go requisitos: docker ")
	assert.Equal(t, h1, h2, "case and whitespace must not change the job identity")
	assert.Len(t, h1, 16)

	h3 := JobHash("outra vaga completamente diferente")
	assert.NotEqual(t, h1, h3)
}

func TestNearDuplicate(t *testing.T) {
	assert.True(t, NearDuplicate("texto igual", "TEXTO   IGUAL"))
	assert.False(t, NearDuplicate("", ""))
	assert.False(t, NearDuplicate(sampleResume, sampleJob))

	// a resume that embeds the whole posting plus plenty of extra text is
	// still a copy of it
	padded := sampleJob + " " + sampleResume + " " + sampleResume + " " + sampleResume
	assert.True(t, NearDuplicate(padded, sampleJob))

	// most of the posting pasted in is enough, a full match is not required
	assert.True(t, NearDuplicate(sampleResume+" "+sampleJob[:len(sampleJob)*9/10], sampleJob))
}
