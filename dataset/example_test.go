package dataset_test

import (
	"errors"
	"fmt"

	"github.com/abigailkeller/eDNAjoint-workshop/dataset"
)

// ExampleValidate shows how a consistency failure pinpoints the offending
// cell: site 2's first water sample reports more positive PCR replicates
// than were attempted.
func ExampleValidate() {
	count := dataset.NewFloatMatrix(2, 2)
	attempts := dataset.NewIntMatrix(2, 2)
	detections := dataset.NewIntMatrix(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			count.Set(i, j, 1)
			attempts.Set(i, j, 3)
			detections.Set(i, j, 1)
		}
	}
	detections.Set(1, 0, 5) // exceeds the 3 attempts

	_, err := dataset.Validate(&dataset.Dataset{
		Count:      count,
		Attempts:   attempts,
		Detections: detections,
	})

	var cell *dataset.CellError
	if errors.As(err, &cell) {
		fmt.Println(cell.Row, cell.Col, errors.Is(err, dataset.ErrCountExceedsAttempts))
	}
	// Output: 1 0 true
}
