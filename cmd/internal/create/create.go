package create

import (
	"fmt"

	"github.com/nathanhack/ldpc/ldpc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var List bool

var TableRun = func(cmd *cobra.Command, args []string) {
	if List {
		for _, name := range ldpc.Tables() {
			code, _ := ldpc.Lookup(name)
			fmt.Printf("%v\tN=%v K=%v M=%v rate=%0.03f\n", name, code.CodeLen(), code.DataLen(), code.GroupLen(), code.CodeRate())
		}
		return
	}

	if len(args) != 2 {
		fmt.Println("requires both NAME and OUTPUT_TABLE_JSON")
		return
	}

	code, err := ldpc.Lookup(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	logrus.Debugf("saving %v to %v", code.Name(), args[1])
	err = ldpc.SaveTable(args[1], code.Table())
	if err != nil {
		fmt.Println(err)
	}
}
