package verge_test

import (
	"fmt"
	"strings"

	verge "github.com/Koefte/Verge"
)

func ExampleLimitString() {
	for _, src := range []string{"(2n+1)/(3n+2)", "0.5^n", "2^n", "sin(n)"} {
		r, err := verge.LimitString(src)
		if err != nil {
			fmt.Println(src, ":", err)
			continue
		}
		fmt.Println(src, ":", r)
	}

	// Output:
	// (2n+1)/(3n+2) : converges to 0.6666666666666666
	// 0.5^n : converges to 0
	// 2^n : diverges to +inf (exponential)
	// sin(n) : indeterminate
}

func ExampleStopOn() {
	src := strings.NewReader("1/n\nn^2")
	for {
		r, err := verge.Limit(src, verge.StopOn('\n'))
		if err != nil {
			break
		}
		fmt.Println(r)
	}

	// Output:
	// converges to 0
	// diverges to +inf (polynomial)
}
