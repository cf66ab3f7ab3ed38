package model_test

import (
	"fmt"

	"github.com/abigailkeller/eDNAjoint-workshop/dataset"
	"github.com/abigailkeller/eDNAjoint-workshop/model"
)

func ExampleParseFamily() {
	f, err := model.ParseFamily("negative_binomial")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(f, f == model.NegativeBinomial)
	// Output: negative_binomial true
}

// ExampleBuild shows the parameter layout of a minimal two-site Poisson
// model: per-site intensities, the sensitivity intercept, the
// false-positive rate, and the derived per-site true-positive rates.
func ExampleBuild() {
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

	spec, err := model.Build(&dataset.Dataset{
		Count:      count,
		Attempts:   attempts,
		Detections: detections,
	}, model.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(spec.Dim())
	fmt.Println(spec.ParamNames())
	// Output:
	// 4
	// [mu[1] mu[2] alpha[0] p10 p11[1] p11[2]]
}
