package wirefmt_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/catalpa-labs/wirefmt"
)

func TestDetectProvider(t *testing.T) {
	type testCase struct {
		model string
		want  wirefmt.Provider
	}

	runTest := func(tc testCase) func(t *testing.T) {
		return func(t *testing.T) {
			gt.Equal(t, wirefmt.DetectProvider(tc.model), tc.want)
		}
	}

	t.Run("gemini model", runTest(testCase{model: "gemini-1.5-pro", want: wirefmt.ProviderGemini}))
	t.Run("claude model", runTest(testCase{model: "claude-3-opus", want: wirefmt.ProviderClaude}))
	t.Run("openai model", runTest(testCase{model: "gpt-4o", want: wirefmt.ProviderOpenAI}))
	t.Run("empty model", runTest(testCase{model: "", want: wirefmt.ProviderOpenAI}))
	t.Run("mixed case", runTest(testCase{model: "Gemini-Nano", want: wirefmt.ProviderGemini}))
	t.Run("claude substring wins over unknown", runTest(testCase{model: "my-claude-fork", want: wirefmt.ProviderClaude}))
	t.Run("gemini checked before claude", runTest(testCase{model: "gemini-claude-hybrid", want: wirefmt.ProviderGemini}))
}
