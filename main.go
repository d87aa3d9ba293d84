package main

import (
	"github.com/lehigh-university-libraries/reconcile/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/reconcile/format/bibtex"
	_ "github.com/lehigh-university-libraries/reconcile/format/ndjson"
)

func main() {
	cmd.Execute()
}
