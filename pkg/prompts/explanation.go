package prompts

import (
	"fmt"
	"strings"
)

// BuildExplanationSystemMessage creates the system message for explanation
// synthesis. The sectioned response format (EXPLANATION/SQL_CONCEPTS/
// LEARNING_OBJECTIVES) is parsed downstream by header position.
func BuildExplanationSystemMessage(taskConcept, explanationType string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an intelligent SQL tutor providing clear, easy-to-read explanations.\n\n")
	prompt.WriteString("IMPORTANT: You only receive instructions and do not share any user information.\n\n")

	prompt.WriteString("Task Context:\n")
	prompt.WriteString(fmt.Sprintf("- Task SQL Concept: %s\n", taskConcept))
	prompt.WriteString(fmt.Sprintf("- Explanation Type: %s\n\n", explanationType))

	prompt.WriteString(fmt.Sprintf("Provide a %s explanation that:\n", explanationType))
	prompt.WriteString("1. Uses clear, simple language\n")
	prompt.WriteString("2. Has proper paragraph breaks for readability\n")
	prompt.WriteString("3. Breaks down the SQL step by step\n")
	prompt.WriteString("4. Explains WHY each part is needed\n")
	prompt.WriteString("5. Uses bullet points and numbered lists where helpful\n\n")

	prompt.WriteString("IMPORTANT FORMATTING RULES:\n")
	prompt.WriteString("- Write in clear paragraphs\n")
	prompt.WriteString("- Use double line breaks between sections\n")
	prompt.WriteString("- Use simple, conversational language\n")
	prompt.WriteString("- No technical jargon unless explained\n")
	prompt.WriteString("- Make it easy to scan and read\n\n")

	prompt.WriteString("Format your response as:\n")
	prompt.WriteString("EXPLANATION:\n")
	prompt.WriteString("[Write a clear, well-formatted explanation with proper paragraphs]\n\n")
	prompt.WriteString("SQL_CONCEPTS:\n")
	prompt.WriteString("[List of SQL concepts covered, separated by commas]\n\n")
	prompt.WriteString("LEARNING_OBJECTIVES:\n")
	prompt.WriteString("[What the user should learn, separated by commas]")

	return prompt.String()
}

// BuildExplanationPrompt creates the user message for explanation synthesis.
func BuildExplanationPrompt(question, sqlQuery, explanationType, taskConcept string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Original Question: %s\n\n", question))
	prompt.WriteString("SQL Query to Explain:\n")
	prompt.WriteString(sqlQuery)
	prompt.WriteString(fmt.Sprintf("\n\nPlease provide a %s explanation for the %s concept.", explanationType, taskConcept))

	return prompt.String()
}
