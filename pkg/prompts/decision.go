package prompts

import (
	"fmt"
	"strings"
)

// BuildTaskAssessmentSystemMessage returns the system message for the
// question-level cognitive assessment. The model must emit bare JSON; the
// parser strips fences but not prose.
func BuildTaskAssessmentSystemMessage() string {
	return "You are a JSON response agent. Return ONLY valid JSON with the exact field names specified. No additional text or formatting."
}

// BuildTaskAssessmentPrompt creates the instruction prompt that asks the
// model to assess a natural-language question against the user's capability
// threshold before any SQL exists.
func BuildTaskAssessmentPrompt(question, userLevel string, capabilityThreshold float64, sqlExpertise, loadCapacity int) string {
	var prompt strings.Builder

	prompt.WriteString("You are a Task Complexity Assessment Agent. Based on the user query and context below, create a cognitive assessment.\n\n")

	prompt.WriteString(fmt.Sprintf("## User Query: %q\n\n", question))

	prompt.WriteString("## User Context:\n")
	prompt.WriteString(fmt.Sprintf("- User Level: %s\n", userLevel))
	prompt.WriteString(fmt.Sprintf("- User Capability Threshold: %g\n", capabilityThreshold))
	prompt.WriteString(fmt.Sprintf("- SQL Expertise: %d/5\n", sqlExpertise))
	prompt.WriteString(fmt.Sprintf("- Cognitive Load Capacity: %d/5\n\n", loadCapacity))

	prompt.WriteString("## Instructions:\n")
	prompt.WriteString("Create an assessment with these exact values:\n\n")
	prompt.WriteString("1. **intrinsic_load**: Calculate based on query complexity (1-10 scale)\n")
	prompt.WriteString("   - Simple queries (show, list): 1-3\n")
	prompt.WriteString("   - Medium queries (analyze, compare): 4-6\n")
	prompt.WriteString("   - Complex queries (forecast, model): 7-10\n\n")
	prompt.WriteString("2. **task_sql_concept**: \"data_analysis\" for business queries\n\n")
	prompt.WriteString("3. **explanation_needed**: true if intrinsic_load > user_capability_threshold, false otherwise\n\n")
	prompt.WriteString("4. **explanation_type**: \"basic\" if explanation_needed, \"none\" otherwise\n\n")
	prompt.WriteString("5. **reasoning**: Brief explanation of your assessment\n\n")
	prompt.WriteString("6. **task_classification**: \"Data Analysis\"\n\n")
	prompt.WriteString("7. **complexity_breakdown**: Create an object with:\n")
	prompt.WriteString("   - \"data_dimensionality\": intrinsic_load * 0.3\n")
	prompt.WriteString("   - \"analytical_complexity\": intrinsic_load * 0.4\n")
	prompt.WriteString("   - \"presentation_complexity\": intrinsic_load * 0.2\n")
	prompt.WriteString("   - \"temporal_pressure\": intrinsic_load * 0.1\n")
	prompt.WriteString("   - \"intrinsic_load\": same as intrinsic_load above\n")
	prompt.WriteString("   - \"cft_misfit_penalty\": 0.0\n")
	prompt.WriteString("   - \"final_complexity_score\": same as intrinsic_load\n\n")
	prompt.WriteString(fmt.Sprintf("8. **user_capability_threshold**: %g\n\n", capabilityThreshold))
	prompt.WriteString("9. **final_complexity_score**: same as intrinsic_load\n\n")

	prompt.WriteString("## Response Format:\n")
	prompt.WriteString("Return ONLY a valid JSON object with these exact field names and values.")

	return prompt.String()
}

// BuildExplanationDecisionSystemMessage returns the system message for the
// per-query explanation decision made after SQL generation.
func BuildExplanationDecisionSystemMessage() string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert educational assessment system for SQL learning. Your job is to decide whether a user needs an explanation for a SQL query based on their expertise level and the task complexity.\n\n")

	prompt.WriteString("EXPERTISE LEVELS:\n")
	prompt.WriteString("- Level 1: Complete beginner (never used SQL)\n")
	prompt.WriteString("- Level 2: Novice (basic SELECT statements)\n")
	prompt.WriteString("- Level 3: Intermediate (JOINs, GROUP BY, subqueries)\n")
	prompt.WriteString("- Level 4: Advanced (window functions, CTEs, optimization)\n")
	prompt.WriteString("- Level 5: Expert (database design, complex analytics)\n\n")

	prompt.WriteString("EXPLANATION TYPES:\n")
	prompt.WriteString("- \"basic\": Simple, step-by-step explanation for beginners\n")
	prompt.WriteString("- \"intermediate\": Moderate detail for those with some experience\n")
	prompt.WriteString("- \"advanced\": Focused on complex concepts and optimization\n")
	prompt.WriteString("- \"none\": No explanation needed\n\n")

	prompt.WriteString("DECISION CRITERIA:\n")
	prompt.WriteString("- Consider if the task complexity significantly exceeds the user's expertise level\n")
	prompt.WriteString("- Users typically need explanations when encountering concepts 1-2 levels above their expertise\n")
	prompt.WriteString("- Very experienced users (level 4-5) rarely need explanations unless encountering very advanced concepts\n")
	prompt.WriteString("- Consider the specific SQL concept involved and whether it's new to the user's level\n\n")

	prompt.WriteString("Respond in this JSON format:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"explanation_needed\": true/false,\n")
	prompt.WriteString("  \"explanation_type\": \"basic/intermediate/advanced/none\",\n")
	prompt.WriteString("  \"reasoning\": \"Brief explanation of your decision\"\n")
	prompt.WriteString("}")

	return prompt.String()
}

// BuildExplanationDecisionPrompt creates the user message carrying the
// expertise level, structural complexity, concept, and generated SQL.
func BuildExplanationDecisionPrompt(sqlExpertise, taskComplexity int, taskConcept, sqlQuery string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("User SQL Expertise Level: %d/5\n", sqlExpertise))
	prompt.WriteString(fmt.Sprintf("Task Complexity Score: %d/5\n", taskComplexity))
	prompt.WriteString(fmt.Sprintf("SQL Concept Category: %s\n\n", taskConcept))

	prompt.WriteString("SQL Query to Assess:\n")
	prompt.WriteString(sqlQuery)
	prompt.WriteString("\n\nShould this user receive an explanation for this query? What type of explanation would be most appropriate?")

	return prompt.String()
}
