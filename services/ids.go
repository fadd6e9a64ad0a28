package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	customerIDPrefix = "C-"
	productIDPrefix  = "P-"
	orderIDPrefix    = "O-"
)

// newID builds a prefixed, time-ordered identifier such as "O-LZ3K9A1B-9F2C7D10".
func newID(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	rnd := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + ts + "-" + rnd
}
