// Command triage wires the triage decision core to its collaborators —
// configuration, logging, the rule-set directory, and a disposition store —
// and evaluates a JSON answers file for a case. It is a local binding for
// the core; HTTP and queue transports live outside this repository.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rkimidis/acucare-pathways/internal/audit"
	"github.com/rkimidis/acucare-pathways/internal/config"
	"github.com/rkimidis/acucare-pathways/internal/disposition"
	"github.com/rkimidis/acucare-pathways/internal/ruleset"
	"github.com/rkimidis/acucare-pathways/internal/service"
)

func main() {
	caseID := flag.String("case", "", "case identifier (required)")
	rulesetName := flag.String("ruleset", "", "rule set name (default from config)")
	flag.Parse()

	if *caseID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: triage -case <case-id> [-ruleset <name>] <answers.json>")
		os.Exit(2)
	}

	manager, err := config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.GetConfig()

	logger := newLogger(cfg.Logging)

	store, err := newStore(cfg.Store)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open disposition store")
	}
	defer store.Close()

	rulesets, err := ruleset.NewStore(logger, ruleset.NewDirSource(cfg.RuleSets.Dir))
	if err != nil {
		logger.WithError(err).Fatal("Failed to create rule set store")
	}

	svc := service.NewTriageService(logger, rulesets, store, audit.NewLogRecorder(logger))

	answers, err := readAnswers(flag.Arg(0))
	if err != nil {
		logger.WithError(err).Fatal("Failed to read answers file")
	}

	name := *rulesetName
	if name == "" {
		name = cfg.RuleSets.Default
	}

	result, err := svc.Evaluate(context.Background(), service.EvaluateParams{
		CaseID:      *caseID,
		RuleSetName: name,
		Answers:     answers,
		Actor:       "triage-cli",
	})
	if err != nil {
		logger.WithError(err).Fatal("Triage evaluation failed")
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode result")
	}
	fmt.Println(string(output))
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func newStore(cfg config.StoreConfig) (disposition.Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return disposition.NewMemoryStore(), nil
	case "sqlite":
		return disposition.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		return disposition.NewPostgresStoreFromURL(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func readAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var answers map[string]any
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("invalid answers JSON: %w", err)
	}
	return answers, nil
}
