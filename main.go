package main

import (
	_ "embed"
	"log"
	"os"
	"pipe-tools/config"
	"pipe-tools/utils"
)

//goland:noinspection GoUnnecessarilyExportedIdentifiers
var AppVersion = "1.2"

//go:embed config.yaml
var defaultConfigData []byte

func main() {
	c, err := config.Load(defaultConfigData)

	if err != nil {
		log.Fatal(err)
	}

	err = utils.SetupLogger(c.LogFilePath)

	if err != nil {
		log.Fatal(err)
	}

	db, err := initDb(c)

	if err != nil {
		log.Fatal(err)
	}

	ctx := &Context{
		Config: c,
		DB:     db,
	}

	err = ctx.newRootCommand().Execute()

	if closeErr := closeDb(db); closeErr != nil {
		log.Printf("failed to close the database: %v", closeErr)
	}

	if err != nil {
		utils.ConsoleAndLogPrintf("Error: %v", err)
		os.Exit(1)
	}
}
