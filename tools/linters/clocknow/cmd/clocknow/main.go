package main

import (
	"github.com/rezkam/taskmind/tools/linters/clocknow"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(clocknow.Analyzer)
}
