package main

import (
	"fmt"
	"os"

	"github.com/davorinm/mustache/pkg/mustache"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps a rendering failure to a process exit code: template
// errors exit with the negated status code, anything else with 1.
func exitStatus(err error) int {
	code := mustache.CodeOf(err)
	if code == mustache.CodeOK {
		return 0
	}
	status := int(-code)
	if status > 125 {
		status = 125
	}
	return status
}
