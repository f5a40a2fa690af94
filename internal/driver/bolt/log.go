package bolt

import (
	"fmt"
	"log/slog"
)

// logBridge forwards the Neo4j driver's internal logging to slog.
type logBridge struct {
	logger *slog.Logger
}

func (b *logBridge) Error(name, id string, err error) {
	b.logger.Error("Neo4j driver error.", "component", name, "id", id, "error", err)
}

func (b *logBridge) Warnf(name, id string, msg string, args ...any) {
	b.logger.Warn(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (b *logBridge) Infof(name, id string, msg string, args ...any) {
	b.logger.Info(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (b *logBridge) Debugf(name, id string, msg string, args ...any) {
	b.logger.Debug(fmt.Sprintf(msg, args...), "component", name, "id", id)
}
