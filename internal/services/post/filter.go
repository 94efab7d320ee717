package post

import (
	"fmt"
	"strings"
)

// listPageSize é o limite fixo da listagem pública
const listPageSize = 50

// ListFilter reúne os filtros opcionais da listagem pública de anúncios.
// Campos zero/nil são ignorados na composição da consulta.
type ListFilter struct {
	Type           string
	NeighborhoodID string
	Color          string
	AgeMin         *int
	AgeMax         *int
	WeightMin      *float64
	WeightMax      *float64
}

// BuildQuery compõe a consulta parametrizada da listagem pública.
// O predicado de status ACTIVE é fixo; os demais entram somente quando
// informados. Ordenação por data de criação, mais recentes primeiro.
func (f ListFilter) BuildQuery() (string, []any) {
	where := []string{"p.status = 'ACTIVE'"}
	args := make([]any, 0)
	i := 1

	if f.Type != "" {
		where = append(where, fmt.Sprintf("p.type = $%d", i))
		args = append(args, f.Type)
		i++
	}

	if f.NeighborhoodID != "" {
		where = append(where, fmt.Sprintf("p.neighborhood_id = $%d", i))
		args = append(args, f.NeighborhoodID)
		i++
	}

	if f.Color != "" {
		where = append(where, fmt.Sprintf("LOWER(p.color) LIKE LOWER($%d)", i))
		args = append(args, "%"+f.Color+"%")
		i++
	}

	if f.AgeMin != nil {
		where = append(where, fmt.Sprintf("p.age_months >= $%d", i))
		args = append(args, *f.AgeMin)
		i++
	}

	if f.AgeMax != nil {
		where = append(where, fmt.Sprintf("p.age_months <= $%d", i))
		args = append(args, *f.AgeMax)
		i++
	}

	if f.WeightMin != nil {
		where = append(where, fmt.Sprintf("p.weight_kg >= $%d", i))
		args = append(args, *f.WeightMin)
		i++
	}

	if f.WeightMax != nil {
		where = append(where, fmt.Sprintf("p.weight_kg <= $%d", i))
		args = append(args, *f.WeightMax)
		i++
	}

	query := fmt.Sprintf(`
		SELECT
			p.id, p.type, p.status, p.species, p.name, p.color,
			p.age_months, p.weight_kg, p.sex, p.size,
			p.description, p.event_date, p.created_at, p.updated_at,
			n.name AS neighborhood,
			p.neighborhood_id
		FROM pet_posts p
		JOIN neighborhoods n ON n.id = p.neighborhood_id
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT %d`, strings.Join(where, " AND "), listPageSize)

	return query, args
}
