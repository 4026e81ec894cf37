package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rpsplus/internal/rpsplus/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	// A missing .env file is fine, the environment is used as is.
	_ = godotenv.Load()

	if err := rpsplus(); err != nil {
		logrus.Fatal(err)
	}
}

func rpsplus() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
