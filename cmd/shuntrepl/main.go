// Command shuntrepl is an interactive read-eval-print loop over the
// expression engine: each line is compiled and evaluated against one
// persistent scope, so assignments on one line are visible to the
// next, the way a host embedding the engine as a scripting surface
// would use it.
package main

import (
	"fmt"
	"os"
	str "strings"

	"shunt"
)

func main() {
	scope := shunt.NewRootEnv()
	registry := shunt.DefaultRegistry()

	fmt.Println(str.Repeat("-", terminalWidth()))
	fmt.Println("shunt expression REPL - 'exit' or Ctrl-D to quit")
	for {
		line, ok := readLine("shunt> ")
		if !ok {
			fmt.Println()
			return
		}
		line = str.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		ce, err := shunt.Compile(line, registry)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		v, err := shunt.Evaluate(ce, scope, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println(shunt.Format(v))
	}
}
