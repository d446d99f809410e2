package dataset

import "math/rand"

// Sample returns a deterministic demo sales dataset (five products across six
// months) for trying the tool without a data file.
func Sample() *Dataset {
	products := []string{"Product A", "Product B", "Product C", "Product D", "Product E"}
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

	rng := rand.New(rand.NewSource(42))
	var rows [][]Value
	for _, p := range products {
		for _, m := range months {
			sales := float64(100 + rng.Intn(900))
			profit := sales * (0.1 + rng.Float64()*0.2)
			profit = float64(int(profit*100+0.5)) / 100
			rows = append(rows, []Value{p, m, sales, profit})
		}
	}
	ds, err := New([]string{"product", "month", "sales", "profit"}, rows)
	if err != nil {
		panic(err) // static shape, cannot fail
	}
	return ds
}
