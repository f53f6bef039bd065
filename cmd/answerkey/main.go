// answerkey is the command line interface for offline answer analysis
// and schema management.
package main

import (
	"os"

	"github.com/turtacn/AnswerKey-Intelligence/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
