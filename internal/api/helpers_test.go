package api

import (
	"strconv"

	"go.uber.org/zap"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func nopLog() *zap.SugaredLogger { return zap.NewNop().Sugar() }
