package main

import (
	"fmt"
	"os"

	"github.com/trknhr/tonecheck/cmd"
	"github.com/trknhr/tonecheck/internal"
	"github.com/trknhr/tonecheck/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	db, err := internal.OpenDB(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	if err := cmd.Execute(db, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		db.Close()
		os.Exit(1)
	}
}
