package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kevinzhu12/monopoly-bench/internal/agent"
	"github.com/kevinzhu12/monopoly-bench/internal/board"
	"github.com/kevinzhu12/monopoly-bench/internal/config"
	"github.com/kevinzhu12/monopoly-bench/internal/logger"
	"github.com/kevinzhu12/monopoly-bench/internal/match"
	"github.com/kevinzhu12/monopoly-bench/internal/protocol"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	players := flag.Int("players", cfg.Players, "number of players")
	seed := flag.Int64("seed", cfg.Seed, "random seed (0 = time based)")
	boardPath := flag.String("board", cfg.Board, "board catalog JSON (empty = built-in board)")
	agents := flag.String("agents", strings.Join(cfg.Agents, ","), "comma separated agent specs, one per player")
	maxTurns := flag.Int("max-turns", cfg.MaxTurns, "turn limit")
	transcript := flag.String("transcript", cfg.Transcript, "write a JSON-lines transcript to this file")
	flag.Parse()

	cfg.Players, cfg.Seed, cfg.Board, cfg.MaxTurns, cfg.Transcript = *players, *seed, *boardPath, *maxTurns, *transcript
	cfg.Agents = strings.Split(*agents, ",")
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("match failed")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	defs := board.Default()
	if cfg.Board != "" {
		var err error
		if defs, err = board.LoadFile(cfg.Board); err != nil {
			return err
		}
	}

	roster, err := match.FromSpecs(agent.DefaultRegistry(), cfg.Agents, cfg.Seed)
	if err != nil {
		return err
	}
	runner, err := match.New(roster, defs, cfg.EngineConfig(log))
	if err != nil {
		return err
	}
	runner.MaxSteps = cfg.MaxSteps

	if cfg.Transcript != "" {
		f, err := os.Create(cfg.Transcript)
		if err != nil {
			return fmt.Errorf("transcript: %w", err)
		}
		defer f.Close()
		runner.Transcript = protocol.NewTranscript(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	for i, s := range res.Standings {
		log.WithFields(logrus.Fields{
			"rank":       i + 1,
			"player":     s.PlayerID,
			"cash":       s.Cash,
			"properties": s.Properties,
			"houses":     s.Houses,
			"net_worth":  s.NetWorth,
		}).Info("standing")
	}
	return err
}
