package recipe_test

import (
	"testing"

	"go.trai.ch/drub/internal/adapters/recipe"
)

func TestHasher_Deterministic(t *testing.T) {
	h := recipe.NewHasher()

	a := map[string]any{
		"dirname": "views",
		"pipeline": []any{
			map[string]any{"url": "views-7.x-3.24", "hash": "abc"},
		},
	}
	b := map[string]any{
		"pipeline": []any{
			map[string]any{"hash": "abc", "url": "views-7.x-3.24"},
		},
		"dirname": "views",
	}

	hashA, err := h.HashRecipe(a)
	if err != nil {
		t.Fatalf("HashRecipe failed: %v", err)
	}
	hashB, err := h.HashRecipe(b)
	if err != nil {
		t.Fatalf("HashRecipe failed: %v", err)
	}

	if hashA != hashB {
		t.Errorf("equal recipes hash differently: %s vs %s", hashA, hashB)
	}
	if len(hashA) != 16 {
		t.Errorf("expected 16 hex chars, got %q", hashA)
	}
}

func TestHasher_DistinguishesRecipes(t *testing.T) {
	h := recipe.NewHasher()

	hashA, err := h.HashRecipe(map[string]any{"url": "views-7.x-3.24"})
	if err != nil {
		t.Fatalf("HashRecipe failed: %v", err)
	}
	hashB, err := h.HashRecipe(map[string]any{"url": "views-7.x-3.25"})
	if err != nil {
		t.Fatalf("HashRecipe failed: %v", err)
	}

	if hashA == hashB {
		t.Error("different recipes produced the same hash")
	}
}

func TestHasher_RejectsUnserializable(t *testing.T) {
	h := recipe.NewHasher()

	if _, err := h.HashRecipe(map[string]any{"fn": func() {}}); err == nil {
		t.Error("expected error for unserializable recipe")
	}
}
