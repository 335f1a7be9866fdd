// Package prompts builds the LLM prompts used by the translation,
// decision, and explanation stages.
package prompts

import (
	"fmt"
	"strings"
)

// BuildTranslationSystemMessage creates the system message for SQL
// generation. The schema snapshot gives the model full table context; the
// response format contract (REASONING/SQL sections) is what the extractor
// downstream relies on.
func BuildTranslationSystemMessage(schemaSnapshot string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert SQL analyst following the ReAct (Reasoning and Acting) approach.\n\n")
	prompt.WriteString(schemaSnapshot)
	prompt.WriteString("\n\nIMPORTANT: All SQL operations are allowed. You can generate any type of SQL query.\n\n")

	prompt.WriteString("For the given natural language query, follow this ReAct pattern:\n")
	prompt.WriteString("1. THOUGHT: Analyze what the user is asking for\n")
	prompt.WriteString("2. ACTION: Determine what SQL operations are needed\n")
	prompt.WriteString("3. OBSERVATION: Consider the database schema and available tables\n")
	prompt.WriteString("4. THOUGHT: Plan the SQL query structure\n")
	prompt.WriteString("5. ACTION: Write the final SQL query\n\n")

	prompt.WriteString("Provide both your reasoning process and the final SQL query.\n")
	prompt.WriteString("Be precise and consider performance implications.\n")
	prompt.WriteString("You can generate any SQL operation including SELECT, INSERT, UPDATE, DELETE, CREATE, DROP, etc.\n\n")

	prompt.WriteString("Format your response as:\n")
	prompt.WriteString("REASONING:\n")
	prompt.WriteString("[Your step-by-step reasoning]\n\n")
	prompt.WriteString("SQL:\n")
	prompt.WriteString("[Your SQL query]")

	return prompt.String()
}

// BuildTranslationPrompt creates the user message for SQL generation.
func BuildTranslationPrompt(question string) string {
	return fmt.Sprintf("Generate SQL for: %s", question)
}
