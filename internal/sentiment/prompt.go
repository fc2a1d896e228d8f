package sentiment

import "fmt"

const systemPrompt = "You are a sentiment classifier for movie reviews. " +
	"Answer with exactly one line in the form: <label>, <confidence>. " +
	"The label is Positive or Negative. The confidence is a number between 0 and 1. " +
	"Do not add any other text."

// classificationPrompt wraps the review text in the instruction sent to
// generative backends. The answer format is parsed by AnswerNormalizer.
func classificationPrompt(text string) string {
	return fmt.Sprintf("Classify the sentiment of the following movie review.\n\nReview:\n%s\n\nAnswer (label, confidence):", text)
}
