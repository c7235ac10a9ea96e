package pgdb

import (
	"strings"
	"testing"
)

func TestUserCascadeQueries(t *testing.T) {
	find := func(t *testing.T, table string) (int, string) {
		t.Helper()
		for i, q := range userCascadeQueries {
			if strings.HasPrefix(strings.TrimSpace(q), "DELETE FROM "+table) {
				return i, q
			}
		}
		t.Fatalf("no cascade step for table %s", table)
		return 0, ""
	}

	t.Run("shared gallery images survive the cascade", func(t *testing.T) {
		_, q := find(t, "images")

		// Изображения связаны с продуктами через m2m: строка, на которую
		// ссылается продукт другого владельца, удаляться не должна.
		if !strings.Contains(q, "NOT IN") || !strings.Contains(q, "user_id <> $1") {
			t.Errorf("images step does not exclude other owners' links:\n%s", q)
		}
	})

	t.Run("leaves are deleted before products", func(t *testing.T) {
		answers, _ := find(t, "rating_answers")
		ratings, _ := find(t, "ratings")
		images, _ := find(t, "images")
		products, _ := find(t, "products")

		if !(answers < ratings && ratings < products && images < products) {
			t.Errorf("cascade order violates FK dependencies: %v",
				[]int{answers, ratings, images, products})
		}
	})

	t.Run("payments are never touched", func(t *testing.T) {
		for _, q := range userCascadeQueries {
			if strings.Contains(q, "payments ") || strings.HasPrefix(strings.TrimSpace(q), "DELETE FROM payments") {
				t.Errorf("cascade must not delete payment snapshots:\n%s", q)
			}
		}
	})
}
