package examine

import (
	"context"
	"fmt"

	"github.com/nathanhack/ldpc/ldpc"
	"github.com/spf13/cobra"
)

var (
	Girth   bool
	Limit   int
	Threads uint
)

var ExamineRun = func(cmd *cobra.Command, args []string) {
	code, err := ldpc.LoadTable(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := ldpc.Examine(code); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%v: N=%v K=%v M=%v rate=%0.03f links=%v max check degree=%v max bit degree=%v\n",
		code.Name(), code.CodeLen(), code.DataLen(), code.GroupLen(), code.CodeRate(),
		code.LinksTotal(), code.LinksMaxCN(), code.MaxBitDeg())

	if !Girth {
		return
	}
	if Limit != -1 && (Limit < 4 || Limit%2 != 0) {
		fmt.Println("limit must be -1 or an even number >= 4")
		return
	}

	girth := ldpc.Girth(context.Background(), code, Limit, int(Threads))
	if girth < 0 {
		fmt.Println("girth: no cycle found")
		return
	}
	fmt.Println("girth:", girth)
}
