package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
)

// MockLLM is a mock implementation of the llms.LLM interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func completionResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

func newPlannerPantry(t *testing.T) *pantry.Service {
	t.Helper()
	svc, err := pantry.NewService(context.Background(), pantry.NewMemoryStore(), "owner-1",
		pantry.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "Flour", 2, "cups", pantry.AddOptions{})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "eggs", 6, "count", pantry.AddOptions{})
	require.NoError(t, err)
	return svc
}

func TestSuggestParsesCompletion(t *testing.T) {
	svc := newPlannerPantry(t)

	completion := "Here are some ideas:\n```json\n" + `[
		{"name": "Pancakes", "description": "Simple pancakes", "servings": 4,
		 "ingredients": [{"name": "flour", "quantity": 1, "unit": "cup"}, {"name": "eggs", "quantity": 2, "unit": "count"}],
		 "steps": ["Mix", "Fry"]}
	]` + "\n```"

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(completionResponse(completion), nil)

	suggestions, err := NewPlanner(mockLLM).Suggest(context.Background(), svc, 3)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Pancakes", suggestions[0].Name)
	assert.Equal(t, 4, suggestions[0].Servings)
	require.Len(t, suggestions[0].Ingredients, 2)
	assert.Equal(t, "flour", suggestions[0].Ingredients[0].Name)
	mockLLM.AssertExpectations(t)
}

func TestSuggestTruncatesToLimit(t *testing.T) {
	svc := newPlannerPantry(t)

	completion := `[
		{"name": "A", "ingredients": [], "steps": []},
		{"name": "B", "ingredients": [], "steps": []},
		{"name": "C", "ingredients": [], "steps": []}
	]`

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(completionResponse(completion), nil)

	suggestions, err := NewPlanner(mockLLM).Suggest(context.Background(), svc, 2)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestSuggestModelError(t *testing.T) {
	svc := newPlannerPantry(t)

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

	_, err := NewPlanner(mockLLM).Suggest(context.Background(), svc, 3)
	assert.Error(t, err)
}

func TestSuggestRejectsProseOnlyCompletion(t *testing.T) {
	svc := newPlannerPantry(t)

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(completionResponse("I cannot help with that."), nil)

	_, err := NewPlanner(mockLLM).Suggest(context.Background(), svc, 3)
	assert.Error(t, err)
}
