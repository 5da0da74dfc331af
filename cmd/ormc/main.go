//go:build !wasm

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tinywasm/sqlorm"
)

func main() {
	root := flag.String("root", ".", "directory to scan for model.go and models.go files")
	flag.Parse()

	o := sqlorm.NewOrmc()
	o.SetRootDir(*root)
	o.SetLog(func(messages ...any) {
		fmt.Fprintln(os.Stderr, messages...)
	})
	if err := o.Run(); err != nil {
		log.Fatalf("ormc: %v", err)
	}
}
