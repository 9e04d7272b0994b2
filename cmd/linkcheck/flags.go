package main

import (
	"flag"
	"io"
)

type AppFlags struct {
	GlobalConfigFile string
	TargetURL        string
}

// ParseFlags reads the command line. Short aliases are used only when the long form is unset.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("linkcheck", flag.ContinueOnError)
	fs.SetOutput(output)

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	targetURL := fs.String("target", "", "Page to scan (overrides TARGET_URL and the config file)")
	targetURLAlias := fs.String("t", "", "Alias for -target")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *targetURL != "" {
		flags.TargetURL = *targetURL
	} else if *targetURLAlias != "" {
		flags.TargetURL = *targetURLAlias
	}

	return flags, nil
}
