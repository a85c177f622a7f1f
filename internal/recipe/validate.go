package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParsePayload decodes raw model output and validates it. Parse failures are
// reported as *MalformedPayloadError, contract violations as *SchemaValidationError.
func ParsePayload(content string) ([]Recipe, error) {
	value, err := decodeJSON(content)
	if err != nil {
		return nil, &MalformedPayloadError{Err: err}
	}
	return Validate(value)
}

func decodeJSON(content string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return value, nil
}

// Validate checks a decoded JSON value against the recipe contract. The value
// may be an array of recipes or an object holding a "recipes" array; both
// yield the same result. One bad recipe rejects the whole batch, and so does
// a batch with no recipes at all.
func Validate(payload any) ([]Recipe, error) {
	var (
		items  []any
		prefix string
	)
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		raw, ok := v["recipes"]
		if !ok || raw == nil {
			return nil, &SchemaValidationError{Path: "recipes", Message: "is required"}
		}
		list, ok := raw.([]any)
		if !ok {
			return nil, &SchemaValidationError{Path: "recipes", Message: "must be an array"}
		}
		items, prefix = list, "recipes"
	default:
		return nil, &SchemaValidationError{Message: "payload must be an array of recipes or an object with a recipes array"}
	}

	if len(items) == 0 {
		return nil, &SchemaValidationError{Path: "recipes", Message: "must contain at least one recipe"}
	}

	recipes := make([]Recipe, 0, len(items))
	for i, item := range items {
		r, err := validateRecipe(item, fmt.Sprintf("%s[%d]", prefix, i))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func validateRecipe(item any, path string) (Recipe, error) {
	obj, err := asObject(item, path)
	if err != nil {
		return Recipe{}, err
	}

	var r Recipe
	if r.Title, err = obj.text("title"); err != nil {
		return Recipe{}, err
	}
	if r.Description, err = obj.text("description"); err != nil {
		return Recipe{}, err
	}
	if r.Difficulty, err = obj.text("difficulty"); err != nil {
		return Recipe{}, err
	}
	if r.CookTime, err = obj.integer("cookTime", 0); err != nil {
		return Recipe{}, err
	}
	if r.Servings, err = obj.integer("servings", 0); err != nil {
		return Recipe{}, err
	}
	if r.MatchedIngredients, err = obj.integer("matchedIngredients", 0); err != nil {
		return Recipe{}, err
	}
	if r.TotalIngredients, err = obj.integer("totalIngredients", 0); err != nil {
		return Recipe{}, err
	}

	ingredients, err := obj.list("ingredients")
	if err != nil {
		return Recipe{}, err
	}
	r.Ingredients = make([]Ingredient, 0, len(ingredients))
	for i, raw := range ingredients {
		ing, err := validateIngredient(raw, fmt.Sprintf("%s.ingredients[%d]", path, i))
		if err != nil {
			return Recipe{}, err
		}
		r.Ingredients = append(r.Ingredients, ing)
	}

	instructions, err := obj.list("instructions")
	if err != nil {
		return Recipe{}, err
	}
	r.Instructions = make([]Instruction, 0, len(instructions))
	for i, raw := range instructions {
		step, err := validateInstruction(raw, fmt.Sprintf("%s.instructions[%d]", path, i))
		if err != nil {
			return Recipe{}, err
		}
		r.Instructions = append(r.Instructions, step)
	}

	if r.Tags, err = obj.tags("tags"); err != nil {
		return Recipe{}, err
	}
	return r, nil
}

func validateIngredient(item any, path string) (Ingredient, error) {
	obj, err := asObject(item, path)
	if err != nil {
		return Ingredient{}, err
	}

	var ing Ingredient
	if ing.Name, err = obj.text("name"); err != nil {
		return Ingredient{}, err
	}
	if ing.Quantity, err = obj.quantity("quantity"); err != nil {
		return Ingredient{}, err
	}
	if ing.Unit, err = obj.optionalText("unit"); err != nil {
		return Ingredient{}, err
	}
	if ing.InInventory, err = obj.boolean("inInventory"); err != nil {
		return Ingredient{}, err
	}
	return ing, nil
}

func validateInstruction(item any, path string) (Instruction, error) {
	obj, err := asObject(item, path)
	if err != nil {
		return Instruction{}, err
	}

	var step Instruction
	if step.Step, err = obj.integer("step", 1); err != nil {
		return Instruction{}, err
	}
	if step.Instruction, err = obj.text("instruction"); err != nil {
		return Instruction{}, err
	}
	return step, nil
}

// object is a decoded JSON object together with its location in the payload.
type object struct {
	path   string
	fields map[string]any
}

func asObject(v any, path string) (object, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return object{}, &SchemaValidationError{Path: path, Message: "must be an object"}
	}
	return object{path: path, fields: fields}, nil
}

func (o object) fieldPath(name string) string {
	if o.path == "" {
		return name
	}
	return o.path + "." + name
}

func (o object) fail(name, msg string) error {
	return &SchemaValidationError{Path: o.fieldPath(name), Message: msg}
}

func (o object) text(name string) (string, error) {
	s, ok := o.fields[name].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", o.fail(name, "must be a non-empty string")
	}
	return strings.TrimSpace(s), nil
}

// optionalText treats a missing or null value as "".
func (o object) optionalText(name string) (string, error) {
	switch v := o.fields[name].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", o.fail(name, "must be a string or null")
	}
}

// quantity accepts a string or a number; numbers keep their literal text.
func (o object) quantity(name string) (string, error) {
	switch v := o.fields[name].(type) {
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", o.fail(name, "must be a string or number")
	}
}

func (o object) boolean(name string) (bool, error) {
	b, ok := o.fields[name].(bool)
	if !ok {
		return false, o.fail(name, "must be a boolean")
	}
	return b, nil
}

// integer accepts integral JSON numbers and numeric strings no smaller than min.
func (o object) integer(name string, min int) (int, error) {
	var f float64
	switch v := o.fields[name].(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, o.fail(name, "must be a number")
		}
		f = parsed
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, o.fail(name, "must be a number")
		}
		f = parsed
	default:
		return 0, o.fail(name, "must be a number")
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, o.fail(name, "must be a whole number")
	}
	if f < float64(min) {
		return 0, o.fail(name, fmt.Sprintf("must be at least %d", min))
	}
	if f > math.MaxInt32 {
		return 0, o.fail(name, "is too large")
	}
	return int(f), nil
}

func (o object) list(name string) ([]any, error) {
	items, ok := o.fields[name].([]any)
	if !ok {
		return nil, o.fail(name, "must be an array")
	}
	return items, nil
}

// tags treats a missing or null value as an empty list.
func (o object) tags(name string) ([]string, error) {
	raw, present := o.fields[name]
	if !present || raw == nil {
		return []string{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, o.fail(name, "must be an array of strings")
	}
	tags := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &SchemaValidationError{Path: fmt.Sprintf("%s[%d]", o.fieldPath(name), i), Message: "must be a string"}
		}
		tags = append(tags, s)
	}
	return tags, nil
}
