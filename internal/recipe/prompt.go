package recipe

import (
	"fmt"
	"strings"
)

// SuggestionCount is the number of recipes requested per generation round.
const SuggestionCount = 3

// SystemPrompt frames every generation request.
const SystemPrompt = "You are a practical home cook who plans meals around what is already in the kitchen. " +
	"Respond only with a single JSON object and no surrounding text or markdown."

const outputShape = `{
  "recipes": [
    {
      "title": "string",
      "description": "string",
      "cookTime": 30,
      "difficulty": "Easy | Medium | Hard",
      "servings": 2,
      "ingredients": [
        { "name": "string", "quantity": "string", "unit": "string", "inInventory": true }
      ],
      "instructions": [
        { "step": 1, "instruction": "string" }
      ],
      "matchedIngredients": 3,
      "totalIngredients": 5,
      "tags": ["string"]
    }
  ]
}`

// InventoryLines renders one "<name>: <quantity> <unit>" line per entry, in
// order. Blank quantity or unit parts are left out.
func InventoryLines(entries []InventoryEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		parts := []string{strings.TrimSpace(e.Name) + ":"}
		for _, part := range []string{e.Quantity, e.Unit} {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// BuildPrompt turns an inventory snapshot into the generation request text.
// The same snapshot always produces the same prompt.
func BuildPrompt(entries []InventoryEntry) string {
	var b strings.Builder

	b.WriteString("These are the ingredients currently in my kitchen:\n")
	for _, line := range InventoryLines(entries) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(entries) == 0 {
		b.WriteString("(nothing is in stock right now)\n")
	}

	fmt.Fprintf(&b, "\nSuggest exactly %d recipes that use as many of these ingredients as possible. ", SuggestionCount)
	b.WriteString("A recipe may need a few ingredients I do not have; list them like any other ingredient and mark them with \"inInventory\": false.\n\n")

	b.WriteString("Return JSON with exactly this shape:\n")
	b.WriteString(outputShape)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- cookTime is the total time in minutes as an integer.\n")
	b.WriteString("- servings, matchedIngredients and totalIngredients are integers.\n")
	b.WriteString("- matchedIngredients counts ingredients with \"inInventory\": true; totalIngredients counts all ingredients.\n")
	b.WriteString("- quantity is always a string, for example \"2\" or \"0.5\".\n")
	b.WriteString("- Always include a \"unit\" field for every ingredient. Use \"\" when the ingredient has no unit.\n")
	b.WriteString("- Instructions are numbered from step 1 in cooking order.\n")
	b.WriteString("- tags is a list of short lowercase labels and may be empty.\n")

	return b.String()
}
