package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/nakamaio/create-iota-app/cmd"
	"github.com/nakamaio/create-iota-app/internal/constants"
	"github.com/nakamaio/create-iota-app/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger(false)

	outputDir := "docs"
	manDir := filepath.Join(outputDir, "man")
	if err := os.MkdirAll(manDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Error creating docs dir")
	}

	log.Info().Msg("Generating docs...")

	root := cmd.RootCmd
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, outputDir); err != nil {
		log.Fatal().Err(err).Msg("Error generating markdown documentation")
	}

	header := &doc.GenManHeader{
		Title:   "CREATE-IOTA-APP",
		Section: "1",
		Source:  constants.AppName,
	}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		log.Fatal().Err(err).Msg("Error generating man pages")
	}

	log.Info().Msgf("Documentation generated in %s", outputDir)
}
