package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestBuildQuery_NoFilters(t *testing.T) {
	query, args := ListFilter{}.BuildQuery()

	assert.Contains(t, query, "p.status = 'ACTIVE'")
	assert.Contains(t, query, "ORDER BY p.created_at DESC")
	assert.Contains(t, query, "LIMIT 50")
	assert.NotContains(t, query, "$1")
	assert.Empty(t, args)
}

func TestBuildQuery_AllFilters(t *testing.T) {
	f := ListFilter{
		Type:           "ADOPTION",
		NeighborhoodID: "6a6e0a0e-0000-0000-0000-000000000001",
		Color:          "caramelo",
		AgeMin:         intPtr(2),
		AgeMax:         intPtr(24),
		WeightMin:      floatPtr(1.5),
		WeightMax:      floatPtr(20),
	}

	query, args := f.BuildQuery()

	assert.Contains(t, query, "p.type = $1")
	assert.Contains(t, query, "p.neighborhood_id = $2")
	assert.Contains(t, query, "LOWER(p.color) LIKE LOWER($3)")
	assert.Contains(t, query, "p.age_months >= $4")
	assert.Contains(t, query, "p.age_months <= $5")
	assert.Contains(t, query, "p.weight_kg >= $6")
	assert.Contains(t, query, "p.weight_kg <= $7")

	assert.Equal(t, []any{
		"ADOPTION",
		"6a6e0a0e-0000-0000-0000-000000000001",
		"%caramelo%",
		2, 24, 1.5, float64(20),
	}, args)
}

func TestBuildQuery_PartialFilters(t *testing.T) {
	f := ListFilter{Color: "preto", WeightMax: floatPtr(10)}

	query, args := f.BuildQuery()

	// Os índices dos parâmetros são contínuos mesmo pulando filtros
	assert.Contains(t, query, "LOWER(p.color) LIKE LOWER($1)")
	assert.Contains(t, query, "p.weight_kg <= $2")
	assert.Equal(t, []any{"%preto%", float64(10)}, args)
}
