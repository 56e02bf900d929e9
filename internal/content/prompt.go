package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt builders for every call shape sent to the text-generation
// provider. Each prompt describes the target JSON shape inline and tells
// the model to reply with bare JSON only; the fence stripper catches the
// models that ignore that last instruction anyway.

const jsonOnly = "IMPORTANT: Return ONLY the JSON with no explanation, no markdown formatting, and no backticks."

func analyzePrompt(topic, difficulty string) string {
	return fmt.Sprintf(`You are a structured data generator.

Analyze the topic '%s' and determine:
1. The appropriate difficulty level (beginner/intermediate/advanced)
2. The logical sections that should be included
3. Key concepts that must be covered

Return your analysis as a valid JSON object with this exact structure:
{
  "recommended_difficulty": "beginner",
  "sections": ["Introduction", "Section 1", "Section 2", "Conclusion"],
  "key_concepts": ["Concept 1", "Concept 2", "Concept 3"]
}

The current difficulty preference is %s.

%s`, topic, difficulty, jsonOnly)
}

func generatePrompt(topic, difficulty string, keyConcepts []string) string {
	concepts := strings.Join(keyConcepts, ", ")
	return fmt.Sprintf(`You are a structured data generator.

Generate comprehensive educational content about %s at a %s level.

Structure your response as a valid JSON object with this exact format:
{
  "topic": "%s",
  "summary": "A concise summary of the topic",
  "sections": [
    {
      "title": "Section title",
      "content": "Detailed section content",
      "key_points": ["Key point 1", "Key point 2", "Key point 3"]
    }
  ],
  "references": ["Reference 1", "Reference 2"],
  "difficulty_level": "%s"
}

Make sure to include these key concepts: %s

Make sure the content is:
1. Educational and accurate
2. Well-structured with logical sections
3. Includes at least 3 key points for each section
4. Appropriate for %s level learners

%s`, topic, difficulty, topic, difficulty, concepts, difficulty, jsonOnly)
}

func repairPrompt(payload json.RawMessage, errMsg string) string {
	pretty := string(payload)
	var buf map[string]any
	if json.Unmarshal(payload, &buf) == nil {
		if b, err := json.MarshalIndent(buf, "", "  "); err == nil {
			pretty = string(b)
		}
	}
	return fmt.Sprintf(`The following content has validation errors:

%s

Error: %s

Please fix the content to match this schema exactly:

{
  "topic": "string",
  "summary": "string",
  "sections": [
    {
      "title": "string",
      "content": "string",
      "key_points": ["string", "string"]
    }
  ],
  "references": ["string"],
  "difficulty_level": "beginner" or "intermediate" or "advanced"
}

Every section needs at least 2 key_points.

Return only the fixed JSON.`, pretty, errMsg)
}

func questionsPrompt(text string, numQuestions int, difficulty string) string {
	return fmt.Sprintf(`You are a teacher tasked with creating %d multiple-choice questions on the following information: %s

Each question should have four options (a, b, c, d) and a correct answer.
Make sure the difficulty of each question is %s.
The questions should be clear, concise, and relevant to the text.

Return the questions as a valid JSON array with this exact structure:
[
  {
    "question": "The question text",
    "option_a": "First option",
    "option_b": "Second option",
    "option_c": "Third option",
    "option_d": "Fourth option",
    "answer_option": "a"
  }
]

%s`, numQuestions, text, difficulty, jsonOnly)
}

func translatePrompt(contentJSON []byte, language string) string {
	return fmt.Sprintf(`Translate the following content from English to %s.
The content is educational material in JSON format.
Return ONLY the translated content in the same JSON structure.

Content to translate:
%s

Rules:
1. Maintain the exact same JSON structure
2. Translate ALL text fields (topic, summary, section titles, content, key points)
3. Do not translate URLs or code blocks
4. Return ONLY valid JSON (no explanations or formatting)`, languageName(language), contentJSON)
}

// ChatPrompt frames a free-form assistant question, optionally grounded on
// previously generated content. Exported for the chat service.
func ChatPrompt(question, grounding string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that provides accurate information.\n")
	fmt.Fprintf(&b, "Answer the following question: %s\n", question)
	if grounding != "" {
		fmt.Fprintf(&b, "Use the provided content for reference: %s\n", grounding)
	}
	b.WriteString(`
Return your answer as a valid JSON object with this exact structure:
{"answer": "Your answer here"}

`)
	b.WriteString(jsonOnly)
	return b.String()
}
