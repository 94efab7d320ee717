package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreatePayload() createPostPayload {
	return createPostPayload{
		Type:           "ADOPTION",
		Species:        "DOG",
		Name:           "Rex",
		Color:          "caramelo",
		AgeMonths:      intPtr(12),
		WeightKg:       floatPtr(8.5),
		Sex:            "M",
		Size:           "MEDIUM",
		NeighborhoodID: "6a6e0a0e-0000-0000-0000-000000000001",
		Description:    "Cachorro dócil, vacinado e castrado.",
	}
}

func TestValidateCreatePost_OK(t *testing.T) {
	p := validCreatePayload()
	assert.Empty(t, validateCreatePost(&p))
}

func TestValidateCreatePost_SexDefaultsToUnknown(t *testing.T) {
	p := validCreatePayload()
	p.Sex = ""

	assert.Empty(t, validateCreatePost(&p))
	assert.Equal(t, "UNKNOWN", p.Sex)
}

func TestValidateCreatePost_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *createPostPayload)
		want   string
	}{
		{"tipo inválido", func(p *createPostPayload) { p.Type = "SALE" }, "type"},
		{"espécie inválida", func(p *createPostPayload) { p.Species = "BIRD" }, "species"},
		{"nome longo demais", func(p *createPostPayload) { p.Name = strings.Repeat("a", 61) }, "name"},
		{"cor curta demais", func(p *createPostPayload) { p.Color = "x" }, "color"},
		{"idade ausente", func(p *createPostPayload) { p.AgeMonths = nil }, "ageMonths"},
		{"idade negativa", func(p *createPostPayload) { p.AgeMonths = intPtr(-1) }, "ageMonths"},
		{"idade acima do limite", func(p *createPostPayload) { p.AgeMonths = intPtr(361) }, "ageMonths"},
		{"peso ausente", func(p *createPostPayload) { p.WeightKg = nil }, "weightKg"},
		{"peso acima do limite", func(p *createPostPayload) { p.WeightKg = floatPtr(250) }, "weightKg"},
		{"sexo inválido", func(p *createPostPayload) { p.Sex = "X" }, "sex"},
		{"porte inválido", func(p *createPostPayload) { p.Size = "GIANT" }, "size"},
		{"bairro ausente", func(p *createPostPayload) { p.NeighborhoodID = "" }, "neighborhoodId"},
		{"descrição curta", func(p *createPostPayload) { p.Description = "curta" }, "description"},
		{"data em formato errado", func(p *createPostPayload) { p.EventDate = "01/02/2026" }, "eventDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCreatePayload()
			tt.mutate(&p)

			msg := validateCreatePost(&p)
			assert.Contains(t, msg, tt.want)
		})
	}
}

func TestValidateCreatePost_FoundLostRequiresEventDate(t *testing.T) {
	p := validCreatePayload()
	p.Type = "FOUND_LOST"
	p.EventDate = ""

	assert.Contains(t, validateCreatePost(&p), "eventDate")

	p.EventDate = "2026-08-15"
	assert.Empty(t, validateCreatePost(&p))
}

func TestValidateUpdatePost(t *testing.T) {
	// Payload vazio é atualização válida (nenhum campo muda)
	assert.Empty(t, validateUpdatePost(&updatePostPayload{}))

	assert.Contains(t, validateUpdatePost(&updatePostPayload{Type: strPtr("SALE")}), "type")
	assert.Contains(t, validateUpdatePost(&updatePostPayload{Color: strPtr("x")}), "color")
	assert.Contains(t, validateUpdatePost(&updatePostPayload{AgeMonths: intPtr(999)}), "ageMonths")
	assert.Contains(t, validateUpdatePost(&updatePostPayload{EventDate: strPtr("amanhã")}), "eventDate")

	assert.Empty(t, validateUpdatePost(&updatePostPayload{
		Color:     strPtr("preto e branco"),
		WeightKg:  floatPtr(12),
		EventDate: strPtr("2026-01-30"),
	}))
}
