package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const omelette = `{
	"title": "Cheese Omelette",
	"description": "Fluffy eggs folded over melted cheese",
	"cookTime": 10,
	"difficulty": "Easy",
	"servings": 1,
	"ingredients": [
		{"name": "egg", "quantity": "2", "unit": "pcs", "inInventory": true},
		{"name": "cheddar", "quantity": 0.25, "unit": null, "inInventory": false},
		{"name": "salt", "quantity": "1 pinch", "inInventory": true}
	],
	"instructions": [
		{"step": 1, "instruction": "Beat the eggs"},
		{"step": 2, "instruction": "Cook and fold over the cheese"}
	],
	"matchedIngredients": 2,
	"totalIngredients": 3,
	"tags": ["breakfast", "quick"]
}`

func TestParsePayloadAcceptsBothShapes(t *testing.T) {
	fromArray, err := ParsePayload("[" + omelette + "]")
	require.NoError(t, err)

	fromObject, err := ParsePayload(`{"recipes": [` + omelette + `]}`)
	require.NoError(t, err)

	assert.Equal(t, fromArray, fromObject)
	require.Len(t, fromArray, 1)

	r := fromArray[0]
	assert.Equal(t, "Cheese Omelette", r.Title)
	assert.Equal(t, 10, r.CookTime)
	assert.Equal(t, 1, r.Servings)
	assert.Equal(t, 2, r.MatchedIngredients)
	assert.Equal(t, 3, r.TotalIngredients)
	assert.Equal(t, []string{"breakfast", "quick"}, r.Tags)
	assert.Equal(t, []Instruction{
		{Step: 1, Instruction: "Beat the eggs"},
		{Step: 2, Instruction: "Cook and fold over the cheese"},
	}, r.Instructions)
}

func TestParsePayloadNormalizesIngredients(t *testing.T) {
	recipes, err := ParsePayload("[" + omelette + "]")
	require.NoError(t, err)

	assert.Equal(t, []Ingredient{
		{Name: "egg", Quantity: "2", Unit: "pcs", InInventory: true},
		{Name: "cheddar", Quantity: "0.25", Unit: "", InInventory: false},
		{Name: "salt", Quantity: "1 pinch", Unit: "", InInventory: true},
	}, recipes[0].Ingredients)
}

func TestParsePayloadDefaultsMissingTags(t *testing.T) {
	payload := `[{"title":"Toast","description":"Bread, toasted","cookTime":"5","difficulty":"Easy","servings":1,
		"ingredients":[],"instructions":[{"step":1,"instruction":"Toast the bread"}],
		"matchedIngredients":0,"totalIngredients":0}]`

	recipes, err := ParsePayload(payload)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{}, recipes[0].Tags)
	assert.Equal(t, 5, recipes[0].CookTime)
}

func TestParsePayloadRejectsEmptyBatch(t *testing.T) {
	for _, content := range []string{`{"recipes": []}`, `[]`} {
		recipes, err := ParsePayload(content)
		assert.Nil(t, recipes, content)
		require.ErrorIs(t, err, ErrSchemaValidation, content)

		var schemaErr *SchemaValidationError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "recipes", schemaErr.Path)
		assert.Equal(t, "must contain at least one recipe", schemaErr.Message)
	}
}

func TestParsePayloadMalformed(t *testing.T) {
	for _, content := range []string{"{not json", `{"recipes": []} trailing`, ""} {
		_, err := ParsePayload(content)
		require.Error(t, err, content)
		assert.True(t, errors.Is(err, ErrMalformedGenerationPayload), content)

		var malformed *MalformedPayloadError
		assert.True(t, errors.As(err, &malformed))
		assert.NotNil(t, malformed.Err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		path    string
	}{
		{
			name:    "missing title",
			payload: `{"recipes":[{"description":"d","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0}]}`,
			path:    "recipes[0].title",
		},
		{
			name:    "blank description",
			payload: `[{"title":"t","description":"  ","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0}]`,
			path:    "[0].description",
		},
		{
			name:    "fractional cook time",
			payload: `[{"title":"t","description":"d","cookTime":1.5,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0}]`,
			path:    "[0].cookTime",
		},
		{
			name:    "servings as word",
			payload: `[{"title":"t","description":"d","cookTime":1,"difficulty":"Easy","servings":"two","ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0}]`,
			path:    "[0].servings",
		},
		{
			name:    "ingredient missing inInventory",
			payload: `[{"title":"t","description":"d","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[{"name":"egg","quantity":"1","unit":""}],"instructions":[],"matchedIngredients":0,"totalIngredients":0}]`,
			path:    "[0].ingredients[0].inInventory",
		},
		{
			name:    "step zero",
			payload: `[{"title":"t","description":"d","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[{"step":0,"instruction":"go"}],"matchedIngredients":0,"totalIngredients":0}]`,
			path:    "[0].instructions[0].step",
		},
		{
			name:    "non string tag",
			payload: `[{"title":"t","description":"d","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0,"tags":["a",2]}]`,
			path:    "[0].tags[1]",
		},
		{
			name:    "recipes not an array",
			payload: `{"recipes": {"title": "t"}}`,
			path:    "recipes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload(tt.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchemaValidation))

			var schemaErr *SchemaValidationError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.path, schemaErr.Path)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestValidateRejectsWholeBatch(t *testing.T) {
	bad := `{"title":"","description":"d","cookTime":1,"difficulty":"Easy","servings":1,"ingredients":[],"instructions":[],"matchedIngredients":0,"totalIngredients":0}`

	recipes, err := ParsePayload("[" + omelette + "," + bad + "]")
	assert.Nil(t, recipes)
	var schemaErr *SchemaValidationError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "[1].title", schemaErr.Path)
}

func TestValidateRejectsScalarPayload(t *testing.T) {
	_, err := Validate("just text")
	assert.ErrorIs(t, err, ErrSchemaValidation)
}
