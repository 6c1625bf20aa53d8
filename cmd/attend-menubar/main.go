//go:build darwin

package main

import (
	"log"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/aayushbajaj/attend/internal/config"
	"github.com/aayushbajaj/attend/internal/menubar"
	"github.com/aayushbajaj/attend/internal/storage"
)

func init() {
	// AppKit must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	// Ensure HOME is set (needed when launched via launchctl/open)
	if os.Getenv("HOME") == "" {
		if u, err := user.Current(); err == nil {
			os.Setenv("HOME", u.HomeDir)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		log.Fatalf("Failed to get log directory: %v", err)
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, "menubar.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	log.Println("Starting attend menu bar app...")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve timezone: %v", err)
	}

	store, err := storage.New(cfg.ResolvedDataDir(), loc)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	menubar.New(store).Run()
}
