package main

import (
	"fmt"

	"github.com/christopherkarani/blend-client/cmd"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
