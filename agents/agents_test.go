package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/go-ragbot/llm"
	"github.com/aqua777/go-ragbot/outputparser"
)

func TestDecomposer_Decompose(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockLLM(`{"queries": ["list drug cases", "  ", "list family cases"]}`)

	d := NewDecomposer(mock)
	queries, err := d.Decompose(ctx, "list all cases")

	require.NoError(t, err)
	assert.Equal(t, []string{"list drug cases", "list family cases"}, queries)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "list all cases")
}

func TestDecomposer_FencedOutput(t *testing.T) {
	mock := llm.NewMockLLM("```json\n{\"queries\": [\"q1\"]}\n```")

	d := NewDecomposer(mock)
	queries, err := d.Decompose(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, queries)
}

func TestDecomposer_MalformedJSON(t *testing.T) {
	d := NewDecomposer(llm.NewMockLLM("sorry, I cannot help with that"))

	_, err := d.Decompose(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, outputparser.IsParseError(err))
}

func TestDecomposer_LLMError(t *testing.T) {
	d := NewDecomposer(llm.NewMockLLMWithError(errors.New("rate limited")))

	_, err := d.Decompose(context.Background(), "q")

	require.Error(t, err)
	assert.False(t, outputparser.IsParseError(err))
}

func TestDecomposer_EmptyList(t *testing.T) {
	d := NewDecomposer(llm.NewMockLLM(`{"queries": []}`))

	queries, err := d.Decompose(context.Background(), "q")

	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(llm.NewMockLLM(`{"knowledge_base": "Drugs"}`))

	category, err := c.Classify(context.Background(), "list drug cases")

	require.NoError(t, err)
	assert.Equal(t, "drugs", category)
}

func TestClassifier_MissingField(t *testing.T) {
	c := NewClassifier(llm.NewMockLLM(`{"something_else": "drugs"}`))

	_, err := c.Classify(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, outputparser.IsParseError(err))
}

func TestClassifier_MalformedJSON(t *testing.T) {
	c := NewClassifier(llm.NewMockLLM("drugs"))

	_, err := c.Classify(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, outputparser.IsParseError(err))
}

func TestGenerator_Generate(t *testing.T) {
	mock := llm.NewMockLLM("  Here are the cases...  ")

	g := NewGenerator(mock)
	answer, err := g.Generate(context.Background(), "list all cases", []string{"Case A summary", "Case B summary"})

	require.NoError(t, err)
	assert.Equal(t, "Here are the cases...", answer)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Case A summary")
	assert.Contains(t, prompts[0], "Case B summary")
	assert.Contains(t, prompts[0], "list all cases")
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(llm.NewMockLLM(`{"verdict": "Yes", "critique": "", "suggestions": ""}`))

	report, err := v.Validate(context.Background(), "q", []string{"ctx"}, "answer")

	require.NoError(t, err)
	assert.Equal(t, "Yes", report.Verdict)
}

func TestValidator_MalformedJSON(t *testing.T) {
	v := NewValidator(llm.NewMockLLM("looks good to me"))

	_, err := v.Validate(context.Background(), "q", []string{"ctx"}, "answer")

	require.Error(t, err)
	assert.True(t, outputparser.IsParseError(err))
}
