package text_test

import (
	"fmt"

	"github.com/ikedam/viewcopy-builder/pkg/text"
)

func ExampleReplace() {
	res := text.Replace("template-job1,template-job2",
		text.Rule{From: "template-", To: "feature-"},
	)
	fmt.Println(res.Text)
	fmt.Println(res.Count)
	// Output:
	// feature-job1,feature-job2
	// 2
}
