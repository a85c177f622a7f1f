package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/alchemorsel-pantry/backend/internal/recipe"
)

// EmbeddingDimensions matches the vector(3) column on recipes.
const EmbeddingDimensions = 3

// EmbeddingServiceInterface turns text into a vector for similarity search.
type EmbeddingServiceInterface interface {
	GenerateEmbedding(text string) (pgvector.Vector, error)
}

// CharacterEmbedder is a deterministic, dependency-free embedder. It counts
// letters, vowels and words, which is enough to rank keyword matches.
type CharacterEmbedder struct{}

// GenerateEmbedding implements EmbeddingServiceInterface.
func (CharacterEmbedder) GenerateEmbedding(text string) (pgvector.Vector, error) {
	text = strings.ToLower(text)
	var letters, vowels float32
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
	}
	words := float32(len(strings.Fields(text)))
	return pgvector.NewVector([]float32{letters, vowels, words}), nil
}

// embeddingText is the text a stored recipe is embedded from.
func embeddingText(r recipe.Recipe) string {
	parts := []string{r.Title, r.Description}
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Name)
	}
	parts = append(parts, r.Tags...)
	return strings.Join(parts, " ")
}
