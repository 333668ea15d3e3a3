package algorithms

import (
	"sort"

	"museworks_backend/internal/models"
)

// Веса сигналов похожести
const (
	WeightSameCollection = 10
	WeightSameDesigner   = 5
	WeightSharedTag      = 3
	WeightWinner         = 2
	WeightApproved       = 1
)

// RelatednessScore считает похожесть кандидата на исходную работу.
// Теги сравниваются точно, с учетом регистра; каждый общий тег учитывается один раз.
func RelatednessScore(source, candidate *models.Work) int {
	return scoreWithTags(source, tagSet(source.TagList()), candidate)
}

func scoreWithTags(source *models.Work, sourceTags map[string]struct{}, candidate *models.Work) int {
	score := 0

	if candidate.CollectionID == source.CollectionID {
		score += WeightSameCollection
	}
	if candidate.DesignerID == source.DesignerID {
		score += WeightSameDesigner
	}

	score += WeightSharedTag * countSharedTags(sourceTags, candidate.TagList())

	switch candidate.Status {
	case models.WorkStatusWinner:
		score += WeightWinner
	case models.WorkStatusApproved:
		score += WeightApproved
	}

	return score
}

// RankRelated упорядочивает кандидатов по убыванию похожести и возвращает не больше limit работ.
// При равном счете новые работы идут раньше, затем по возрастанию id.
// Исходная работа исключается, даже если попала в кандидаты.
func RankRelated(source *models.Work, candidates []models.Work, limit int) []models.Work {
	if source == nil || limit <= 0 {
		return []models.Work{}
	}

	sourceTags := tagSet(source.TagList())

	type scored struct {
		work  models.Work
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		if c.ID == source.ID {
			continue
		}
		ranked = append(ranked, scored{work: c, score: scoreWithTags(source, sourceTags, &c)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.work.CreatedAt.Equal(b.work.CreatedAt) {
			return a.work.CreatedAt.After(b.work.CreatedAt)
		}
		return a.work.ID < b.work.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]models.Work, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.work)
	}
	return result
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func countSharedTags(sourceTags map[string]struct{}, candidateTags []string) int {
	seen := make(map[string]struct{}, len(candidateTags))
	shared := 0
	for _, t := range candidateTags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := sourceTags[t]; ok {
			shared++
		}
	}
	return shared
}
