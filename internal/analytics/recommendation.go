package analytics

import "sort"

// MostSimilar возвращает всех пользователей с максимальным пересечением оценок,
// по возрастанию id. Нулевые пересечения не учитываются.
func MostSimilar(overlaps map[int64]int) []int64 {
	best := 0
	var users []int64
	for userID, n := range overlaps {
		switch {
		case n <= 0:
			continue
		case n > best:
			best = n
			users = append(users[:0], userID)
		case n == best:
			users = append(users, userID)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// UnseenFilms объединяет оценённые похожими пользователями фильмы и вычитает
// уже оценённые самим пользователем. Результат упорядочен по id.
func UnseenFilms(own []int64, similar [][]int64) []int64 {
	seen := make(map[int64]struct{}, len(own))
	for _, id := range own {
		seen[id] = struct{}{}
	}

	candidates := make(map[int64]struct{})
	for _, films := range similar {
		for _, id := range films {
			if _, ok := seen[id]; ok {
				continue
			}
			candidates[id] = struct{}{}
		}
	}

	out := make([]int64, 0, len(candidates))
	for id := range candidates {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
