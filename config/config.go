package config

import (
	"os"
	"strconv"
	"time"

	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/rules"
	log "github.com/sirupsen/logrus"
)

// Configuration variables. Read once from the environment; command flags
// default to these values.
var (
	BoardWidth    = getEnvInt("BOARD_WIDTH", rules.DefaultWidth)
	BoardHeight   = getEnvInt("BOARD_HEIGHT", rules.DefaultHeight)
	CellSize      = getEnvInt("CELL_SIZE", rules.DefaultCellSize)
	TickStart     = getEnvMillis("TICK_START_MS", rules.DefaultStartInterval)
	TickStep      = getEnvMillis("TICK_STEP_MS", rules.DefaultIntervalStep)
	TickFloor     = getEnvMillis("TICK_FLOOR_MS", rules.DefaultIntervalFloor)
	PauseCooldown = getEnvMillis("PAUSE_COOLDOWN_MS", 200*time.Millisecond)
	IntentBuffer  = getEnvInt("INTENT_BUFFER", 64)
	MaxOpenConns  = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns  = getEnvInt("MAX_IDLE_CONNS", 20)
	LogLevel      = getEnvString("LOG_LEVEL", "info")
)

// Board is the configured board.
func Board() pb.Board {
	return pb.Board{
		Width:    int32(BoardWidth),
		Height:   int32(BoardHeight),
		CellSize: int32(CellSize),
	}
}

// Tuning is the configured speed curve.
func Tuning() pb.Tuning {
	return pb.Tuning{
		StartInterval: TickStart,
		IntervalStep:  TickStep,
		IntervalFloor: TickFloor,
	}
}

// SetLogLevel applies a logrus level name, falling back to info.
func SetLogLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvMillis(varName string, defaults time.Duration) time.Duration {
	ms := getEnvInt(varName, -1)
	if ms < 0 {
		return defaults
	}
	return time.Duration(ms) * time.Millisecond
}

func getEnvString(varName, defaults string) string {
	if val := os.Getenv(varName); val != "" {
		return val
	}
	return defaults
}
