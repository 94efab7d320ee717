package post

import (
	"strings"
	"time"
)

// createPostPayload é o corpo esperado na criação de um anúncio
type createPostPayload struct {
	Type           string   `json:"type"`
	Species        string   `json:"species"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	AgeMonths      *int     `json:"ageMonths"`
	WeightKg       *float64 `json:"weightKg"`
	Sex            string   `json:"sex"`
	Size           string   `json:"size"`
	NeighborhoodID string   `json:"neighborhoodId"`
	Description    string   `json:"description"`
	EventDate      string   `json:"eventDate"`
}

// updatePostPayload é o corpo da atualização parcial de um anúncio
type updatePostPayload struct {
	Type           *string  `json:"type"`
	Species        *string  `json:"species"`
	Name           *string  `json:"name"`
	Color          *string  `json:"color"`
	AgeMonths      *int     `json:"ageMonths"`
	WeightKg       *float64 `json:"weightKg"`
	Sex            *string  `json:"sex"`
	Size           *string  `json:"size"`
	NeighborhoodID *string  `json:"neighborhoodId"`
	Description    *string  `json:"description"`
	EventDate      *string  `json:"eventDate"`
}

var (
	validTypes   = map[string]bool{"ADOPTION": true, "FOUND_LOST": true}
	validSpecies = map[string]bool{"DOG": true, "CAT": true}
	validSexes   = map[string]bool{"M": true, "F": true, "UNKNOWN": true}
	validSizes   = map[string]bool{"SMALL": true, "MEDIUM": true, "LARGE": true}
)

// validateCreatePost valida o payload de criação e devolve a mensagem
// de erro, ou vazio quando o payload é aceito. Normaliza sex vazio
// para UNKNOWN.
func validateCreatePost(p *createPostPayload) string {
	if !validTypes[p.Type] {
		return "type deve ser ADOPTION ou FOUND_LOST"
	}

	if !validSpecies[p.Species] {
		return "species deve ser DOG ou CAT"
	}

	if len(p.Name) > 60 {
		return "name deve ter no máximo 60 caracteres"
	}

	if len(p.Color) < 2 || len(p.Color) > 40 {
		return "color deve ter entre 2 e 40 caracteres"
	}

	if p.AgeMonths == nil || *p.AgeMonths < 0 || *p.AgeMonths > 360 {
		return "ageMonths deve estar entre 0 e 360"
	}

	if p.WeightKg == nil || *p.WeightKg < 0 || *p.WeightKg > 200 {
		return "weightKg deve estar entre 0 e 200"
	}

	if p.Sex == "" {
		p.Sex = "UNKNOWN"
	}
	if !validSexes[p.Sex] {
		return "sex deve ser M, F ou UNKNOWN"
	}

	if p.Size != "" && !validSizes[p.Size] {
		return "size deve ser SMALL, MEDIUM ou LARGE"
	}

	if p.NeighborhoodID == "" {
		return "neighborhoodId é obrigatório"
	}

	if len(p.Description) < 10 || len(p.Description) > 2000 {
		return "description deve ter entre 10 e 2000 caracteres"
	}

	// Regra: event_date obrigatório em FOUND_LOST
	if p.Type == "FOUND_LOST" && strings.TrimSpace(p.EventDate) == "" {
		return "eventDate é obrigatório para FOUND_LOST"
	}

	if strings.TrimSpace(p.EventDate) != "" {
		if _, err := time.Parse("2006-01-02", p.EventDate); err != nil {
			return "eventDate deve estar no formato yyyy-mm-dd"
		}
	}

	return ""
}

// validateUpdatePost valida somente os campos presentes no payload
func validateUpdatePost(p *updatePostPayload) string {
	if p.Type != nil && !validTypes[*p.Type] {
		return "type deve ser ADOPTION ou FOUND_LOST"
	}

	if p.Species != nil && !validSpecies[*p.Species] {
		return "species deve ser DOG ou CAT"
	}

	if p.Name != nil && len(*p.Name) > 60 {
		return "name deve ter no máximo 60 caracteres"
	}

	if p.Color != nil && (len(*p.Color) < 2 || len(*p.Color) > 40) {
		return "color deve ter entre 2 e 40 caracteres"
	}

	if p.AgeMonths != nil && (*p.AgeMonths < 0 || *p.AgeMonths > 360) {
		return "ageMonths deve estar entre 0 e 360"
	}

	if p.WeightKg != nil && (*p.WeightKg < 0 || *p.WeightKg > 200) {
		return "weightKg deve estar entre 0 e 200"
	}

	if p.Sex != nil && !validSexes[*p.Sex] {
		return "sex deve ser M, F ou UNKNOWN"
	}

	if p.Size != nil && *p.Size != "" && !validSizes[*p.Size] {
		return "size deve ser SMALL, MEDIUM ou LARGE"
	}

	if p.Description != nil && (len(*p.Description) < 10 || len(*p.Description) > 2000) {
		return "description deve ter entre 10 e 2000 caracteres"
	}

	if p.EventDate != nil && strings.TrimSpace(*p.EventDate) != "" {
		if _, err := time.Parse("2006-01-02", *p.EventDate); err != nil {
			return "eventDate deve estar no formato yyyy-mm-dd"
		}
	}

	return ""
}
