package grid

import (
	"fmt"
	"math/rand"
)

// people returns the three-row fixture used by the scenario tests.
func people() []Map {
	return []Map{
		{"id": 1, "name": "Bob"},
		{"id": 2, "name": "Ann"},
		{"id": 3, "name": "cat"},
	}
}

func peopleColumns() []Column[Map] {
	return []Column[Map]{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
	}
}

// field collects key from every row, stringified.
func field(rows []Map, key string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = Stringify(r.Field(key))
	}
	return out
}

// numbered returns n rows with ids "r1".."rn".
func numbered(n int) []Map {
	rows := make([]Map, n)
	for i := range rows {
		rows[i] = Map{"id": fmt.Sprintf("r%d", i+1), "n": i + 1}
	}
	return rows
}

// randomRows builds a deterministic mixed dataset with some nil values.
func randomRows(seed int64, n int) []Map {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"Ann", "anna", "Bob", "bobby", "Cat", "Dan", "ellen", "Frank", "gina", "Hank"}
	rows := make([]Map, n)
	for i := range rows {
		row := Map{"id": fmt.Sprintf("id-%d", i)}
		if rng.Intn(5) != 0 {
			row["name"] = names[rng.Intn(len(names))]
		}
		if rng.Intn(4) != 0 {
			row["score"] = rng.Intn(50)
		}
		row["active"] = rng.Intn(2) == 0
		rows[i] = row
	}
	return rows
}
