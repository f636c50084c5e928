package debug

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type debug struct {
	Graph    bool
	Parse    bool
	Tokens   bool
	Match    bool
	LogLevel slog.Level
}

var d *debug

func init() {
	d = &debug{}
	d.Graph = boolEnv("WRL_DEBUG_GRAPH")
	d.Parse = boolEnv("WRL_DEBUG_PARSE")
	d.Tokens = boolEnv("WRL_DEBUG_TOKENS")
	d.Match = boolEnv("WRL_DEBUG_MATCH")
	d.LogLevel = levelEnv("WRL_LOG_LEVEL", slog.LevelWarn)
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func levelEnv(v string, def slog.Level) slog.Level {
	x := strings.TrimSpace(os.Getenv(v))
	if x == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(x)); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", v, x, err)
		return def
	}
	return lvl
}

// Graph reports whether scene graphs assert their invariants after every
// mutation.
func Graph() bool {
	return d.Graph
}
func Parse() bool {
	return d.Parse
}
func Tokens() bool {
	return d.Tokens
}
func Match() bool {
	return d.Match
}
func LogLevel() slog.Level {
	return d.LogLevel
}
