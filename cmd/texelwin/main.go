// Copyright © 2026 Texelwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelwin/main.go
// Summary: Entry point for the texelwin compositor.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/framegrace/texelwin/apps/clock"
	"github.com/framegrace/texelwin/apps/shell"
	"github.com/framegrace/texelwin/config"
	"github.com/framegrace/texelwin/texelwin"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose debug logging")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texelwin must run on a terminal")
		os.Exit(1)
	}

	// The terminal is owned by the compositor, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), "texelwin.log")
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if *verbose {
		texelwin.SetVerboseLogging(true)
	}
	if err := config.Err(); err != nil {
		log.Printf("Config load problem (using defaults): %v", err)
	}

	scr, err := texelwin.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer scr.Close()

	w, h := scr.Size()

	shellW, shellH := w*3/4, h*3/4
	if shellW < 20 {
		shellW = min(w, 20)
	}
	if shellH < 6 {
		shellH = min(h, 6)
	}
	_, err = scr.AddWindow(1, 1, 0, shellW, shellH, texelwin.WindowAttrs{
		Bordered: true,
		Titled:   true,
		Closable: true,
		Title:    "shell",
		Fg:       texelwin.ColorDefault,
		Bg:       texelwin.ColorDefault,
	}, shell.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating shell window: %v\n", err)
		os.Exit(1)
	}

	clockW, clockH := 14, 3
	_, err = scr.AddWindow(w-clockW-1, 0, 1, clockW, clockH, texelwin.WindowAttrs{
		Bordered: true,
		Fg:       texelwin.ColorDefault,
		Bg:       texelwin.ColorDefault,
	}, clock.New())
	if err != nil {
		log.Printf("Clock window skipped: %v", err)
	}

	if err := scr.Run(); err != nil {
		log.Printf("Engine exited with error: %v", err)
	}
}
