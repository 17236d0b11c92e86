// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command momoc compiles a MomoScript source file into its JSON IR
// (spec.md §4.2). Its compile/template/version subcommands follow the
// flag.NewFlagSet subcommand layout of vte.go.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiyihan0/momoscript"
	"github.com/xiyihan0/momoscript/diag"
)

var (
	version   string
	build     string
	gitCommit string
)

func dumpTemplateConf() {
	conf := momoscript.Conf{
		TypstMode:            false,
		JoinContinuationWith: "newline",
		Registry:             momoscript.RegistryConf{Kind: "file", Path: "./packs"},
	}
	b, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to dump a new config")
	}
	fmt.Println(string(b))
}

func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		sev := "error"
		if d.IsWarning() {
			sev = "warning"
		}
		fmt.Fprintf(os.Stderr, "%d:%d: %s: %s (%s)\n",
			d.Span.StartLine, d.Span.StartCol, sev, d.Message, d.Kind)
	}
}

func compileFile(confPath, srcPath, outPath string, verbosity int) {
	conf, err := momoscript.LoadConf(confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	registry, err := momoscript.OpenRegistry(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open pack registry")
	}
	src, err := os.ReadFile(srcPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read source")
	}

	logger := zerolog.Nop()
	if verbosity > 0 || conf.Verbosity > 0 {
		lvl := zerolog.InfoLevel
		if verbosity > 1 || conf.Verbosity > 1 {
			lvl = zerolog.DebugLevel
		}
		logger = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	}

	t0 := time.Now()
	doc, diags, err := momoscript.Compile(string(src), registry, conf.ModeFlags(), logger)
	printDiagnostics(diags)
	if err != nil {
		log.Fatal().Err(err).Msg("compilation failed")
	}
	log.Info().Dur("elapsed", time.Since(t0)).Msg("compiled")

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode IR")
	}
	if outPath == "" || outPath == "-" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}
}

func main() {
	flag.Usage = func() {
		fmt.Println("\n+-----------------------------------------------------------+")
		fmt.Println("| momoc - a MomoScript compiler (source -> IR JSON)          |")
		fmt.Printf("|                       version %s                       |\n", version)
		fmt.Println("+-----------------------------------------------------------+")
		fmt.Println("\nUsage:")
		fmt.Println("momoc compile -conf conf.json -src script.momo [-out out.json] [-v]")
		fmt.Println("momoc template\n\t(write a sample registry config to stdout)")
		fmt.Println("momoc version\n\tshow detailed version information")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	compileCommand := flag.NewFlagSet("compile", flag.ExitOnError)
	confPath := compileCommand.String("conf", "", "registry/mode config path")
	srcPath := compileCommand.String("src", "", "MomoScript source path")
	outPath := compileCommand.String("out", "", "output path ('-' or empty for stdout)")
	verbosity := compileCommand.Int("v", 0, "logging verbosity (0=off, 1=info, 2=debug)")

	switch os.Args[1] {
	case "compile":
		compileCommand.Parse(os.Args[2:])
		if *confPath == "" || *srcPath == "" {
			compileCommand.Usage()
			os.Exit(1)
		}
		compileFile(*confPath, *srcPath, *outPath, *verbosity)
	case "template":
		dumpTemplateConf()
	case "version":
		fmt.Printf("momoc %s\nbuild date: %s\nlast commit: %s\n", version, build, gitCommit)
	default:
		flag.Usage()
		os.Exit(1)
	}
}
